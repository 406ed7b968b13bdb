package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iotaledger/hive.go/kvstore/mapdb"

	"github.com/trustchain/trustchain/packages/testutil/testlogger"
)

func newTestManager(t *testing.T) *UserManager {
	m, err := newUserManager(
		testlogger.NewLogger(t),
		mapdb.NewMapDB(),
		mapdb.NewMapDB(),
		map[Role]Account{
			RoleManufacturer: {ID: "man", Password: "123"},
			RoleRetailer:     {ID: "ret", Password: "123"},
			RoleAdmin:        {},
		},
		bcrypt.MinCost,
	)
	require.NoError(t, err)

	return m
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Retailer ")
	require.NoError(t, err)
	require.Equal(t, RoleRetailer, r)

	_, err = ParseRole("auditor")
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestFixedAccounts(t *testing.T) {
	m := newTestManager(t)

	u, err := m.Authenticate(RoleManufacturer, "man", "123")
	require.NoError(t, err)
	require.Equal(t, RoleManufacturer, u.Role)

	_, err = m.Authenticate(RoleManufacturer, "man", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// retailer credentials do not unlock the manufacturer role
	_, err = m.Authenticate(RoleManufacturer, "ret", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// unconfigured role
	_, err = m.Authenticate(RoleAdmin, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpAndLogin(t *testing.T) {
	m := newTestManager(t)

	u, err := m.SignUp("alice", "Alice@Example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, RoleUser, u.Role)
	require.Equal(t, "alice@example.com", u.Email)
	require.NotContains(t, string(u.PasswordHash), "secret")

	u, err = m.Authenticate(RoleUser, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", u.ID)

	u, err = m.Authenticate(RoleUser, "ALICE@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", u.ID)

	_, err = m.Authenticate(RoleUser, "alice", "nope")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Authenticate(RoleUser, "bob", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpValidation(t *testing.T) {
	m := newTestManager(t)

	_, err := m.SignUp("alice", "alice@example.com", "secret")
	require.NoError(t, err)

	_, err = m.SignUp("alice", "other@example.com", "secret")
	require.ErrorIs(t, err, ErrUserExists)
	_, err = m.SignUp("alice2", "alice@example.com", "secret")
	require.ErrorIs(t, err, ErrUserExists)

	for _, tt := range []struct{ id, email, password string }{
		{"", "x@y.z", "pw"},
		{"bob", "", "pw"},
		{"bob", "x@y.z", ""},
		{"bob", "not-an-email", "pw"},
		{"bob", "a b@c.d", "pw"},
		{"bob@x", "bob@x.io", "pw"},
		{"bob", "bob@x.io", strings.Repeat("p", maxPasswordLength+1)},
	} {
		_, err := m.SignUp(tt.id, tt.email, tt.password)
		require.ErrorIs(t, err, ErrInvalidUser, tt)
	}
}

func TestEndUsersCannotBeFixed(t *testing.T) {
	_, err := newUserManager(testlogger.NewLogger(t), mapdb.NewMapDB(), mapdb.NewMapDB(),
		map[Role]Account{RoleUser: {ID: "u", Password: "p"}}, bcrypt.MinCost)
	require.Error(t, err)
}
