package users

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/log"
)

type Role string

const (
	RoleUser         Role = "user"
	RoleManufacturer Role = "manufacturer"
	RoleRetailer     Role = "retailer"
	RoleAdmin        Role = "admin"
)

var (
	ErrUserExists         = ierrors.New("user already exists")
	ErrInvalidUser        = ierrors.New("invalid user data")
	ErrInvalidCredentials = ierrors.New("invalid credentials")
	ErrUnknownRole        = ierrors.New("unknown role")
)

// bcrypt only hashes the first 72 bytes and rejects anything longer.
const maxPasswordLength = 72

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleUser, RoleManufacturer, RoleRetailer, RoleAdmin:
		return r, nil
	default:
		return "", ierrors.Wrapf(ErrUnknownRole, "%q", s)
	}
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash []byte    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Account is a fixed login of one of the staff roles.
type Account struct {
	ID       string `default:"" usage:"the login id of the account"`
	Password string `default:"" usage:"the password of the account"`
}

type fixedAccount struct {
	id           string
	passwordHash []byte
}

// UserManager handles signup of end users and login for every role.
type UserManager struct {
	log    log.Logger
	mutex  sync.Mutex
	users  kvstore.KVStore
	emails kvstore.KVStore
	fixed  map[Role]fixedAccount
	cost   int
}

func NewUserManager(log log.Logger, userStore, emailStore kvstore.KVStore, accounts map[Role]Account) (*UserManager, error) {
	return newUserManager(log, userStore, emailStore, accounts, bcrypt.DefaultCost)
}

func newUserManager(log log.Logger, userStore, emailStore kvstore.KVStore, accounts map[Role]Account, cost int) (*UserManager, error) {
	m := &UserManager{
		log:    log,
		users:  userStore,
		emails: emailStore,
		fixed:  make(map[Role]fixedAccount),
		cost:   cost,
	}

	for role, account := range accounts {
		if role == RoleUser {
			return nil, ierrors.New("end users cannot have fixed accounts")
		}
		if account.ID == "" || account.Password == "" {
			log.LogWarnf("no account configured for role %s, logins for it are disabled", role)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), cost)
		if err != nil {
			return nil, ierrors.Wrapf(err, "failed to hash password of role %s", role)
		}
		m.fixed[role] = fixedAccount{id: account.ID, passwordHash: hash}
	}

	return m, nil
}

// SignUp registers an end user.
func (m *UserManager) SignUp(id, email, password string) (*User, error) {
	id = strings.TrimSpace(id)
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case id == "" || email == "" || password == "":
		return nil, ierrors.Wrap(ErrInvalidUser, "id, email and password are required")
	case !emailRegex.MatchString(email):
		return nil, ierrors.Wrap(ErrInvalidUser, "invalid email")
	case strings.Contains(id, "@"):
		return nil, ierrors.Wrap(ErrInvalidUser, "id must not contain '@'")
	case len(password) > maxPasswordLength:
		return nil, ierrors.Wrapf(ErrInvalidUser, "password must not exceed %d bytes", maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to hash password")
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, check := range []struct {
		store kvstore.KVStore
		key   string
	}{{m.users, id}, {m.emails, email}} {
		exists, err := check.store.Has([]byte(check.key))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrUserExists
		}
	}

	user := &User{
		ID:           id,
		Email:        email,
		Role:         RoleUser,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := m.saveUser(user); err != nil {
		return nil, err
	}
	if err := m.emails.Set([]byte(email), []byte(id)); err != nil {
		return nil, err
	}
	m.log.LogInfof("user %s signed up", id)

	return user, nil
}

// Get returns the end user with the given ID.
func (m *UserManager) Get(id string) (*User, error) {
	data, err := m.users.Get([]byte(id))
	if err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return decodeUser(data)
}

// GetByEmail returns the end user registered with email.
func (m *UserManager) GetByEmail(email string) (*User, error) {
	id, err := m.emails.Get([]byte(strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if ierrors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return m.Get(string(id))
}

// Authenticate checks the credentials for role. End users may log in with their ID
// or their email address.
func (m *UserManager) Authenticate(role Role, id, password string) (*User, error) {
	if role == RoleUser {
		return m.authenticateUser(id, password)
	}

	account, ok := m.fixed[role]
	if !ok {
		// keep timing close to a failed comparison
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil || id != account.id {
		return nil, ErrInvalidCredentials
	}

	return &User{ID: account.id, Role: role}, nil
}

func (m *UserManager) authenticateUser(id, password string) (*User, error) {
	var (
		user *User
		err  error
	)
	if strings.Contains(id, "@") {
		user, err = m.GetByEmail(id)
	} else {
		user, err = m.Get(strings.TrimSpace(id))
	}
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
