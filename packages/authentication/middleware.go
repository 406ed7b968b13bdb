package authentication

import (
	"slices"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/users"
)

const contextKeyClaims = "jwt"

// Middleware validates the bearer token of a request and stores its claims
// in the echo context.
func (a *JWTAuth) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(_ echo.Context, auth string) (any, error) {
			return a.ParseJWT(auth)
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			if ierrors.Is(err, ErrUnauthorized) {
				return err
			}
			return ierrors.Join(ErrUnauthorized, err)
		},
	})
}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(contextKeyClaims).(*Claims)
	return claims, ok
}

// RequireRole rejects requests whose token does not carry one of roles.
// It must run after Middleware.
func RequireRole(roles ...users.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return ErrUnauthorized
			}
			if !slices.Contains(roles, claims.Role) {
				return ierrors.Wrapf(ErrForbidden, "role %s may not access %s", claims.Role, c.Path())
			}

			return next(c)
		}
	}
}
