package authentication

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/users"
)

const (
	issuer = "trustchain"

	minSecretLength = 16
)

var (
	ErrUnauthorized = ierrors.New("unauthorized")
	ErrForbidden    = ierrors.New("forbidden")
)

// Claims are the claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Role users.Role `json:"role"`
}

// JWTAuth issues and validates HS256 session tokens.
type JWTAuth struct {
	secret   []byte
	duration time.Duration
	clock    func() time.Time
}

// NewJWTAuth creates a JWTAuth. An empty secret is replaced by a random one,
// which invalidates all tokens on restart.
func NewJWTAuth(secret string, duration time.Duration) (*JWTAuth, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, ierrors.Wrap(err, "failed to generate jwt secret")
		}
	}
	if len(key) < minSecretLength {
		return nil, ierrors.Errorf("jwt secret must be at least %d bytes", minSecretLength)
	}
	if duration <= 0 {
		return nil, ierrors.New("jwt duration must be positive")
	}

	return &JWTAuth{secret: key, duration: duration, clock: time.Now}, nil
}

func (a *JWTAuth) Duration() time.Duration {
	return a.duration
}

func (a *JWTAuth) keyFunc(token *jwt.Token) (any, error) {
	return a.secret, nil
}

func (a *JWTAuth) IssueJWT(subject string, role users.Role) (string, error) {
	now := a.clock()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.duration)),
		},
		Role: role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

func (a *JWTAuth) parserOptions() []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.clock),
	}
}

// ParseJWT validates the token and returns its claims.
func (a *JWTAuth) ParseJWT(token string) (*Claims, error) {
	claims := new(Claims)
	if _, err := jwt.ParseWithClaims(token, claims, a.keyFunc, a.parserOptions()...); err != nil {
		return nil, ierrors.Join(ErrUnauthorized, err)
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ierrors.Wrap(ErrUnauthorized, "token is missing subject or role")
	}

	return claims, nil
}
