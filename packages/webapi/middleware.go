package webapi

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Middleware to unescape any supplied path (/path/foo%40bar/) parameter
// Query parameters (?name=foo%40bar) get unescaped by default.
func middlewareUnescapePath(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		escapedPathParams := c.ParamValues()
		unescapedPathParams := make([]string, len(escapedPathParams))

		for i, param := range escapedPathParams {
			unescapedParam, err := url.PathUnescape(param)

			if err != nil {
				unescapedPathParams[i] = param
			} else {
				unescapedPathParams[i] = unescapedParam
			}
		}

		c.SetParamValues(unescapedPathParams...)

		return next(c)
	}
}

// NewChallengeLimiter limits the challenge-response endpoints per client IP.
// It returns nil if rate limiting is deactivated.
func NewChallengeLimiter(limits *ParametersWebAPILimits) echo.MiddlewareFunc {
	if limits.ChallengeRateLimit <= 0 {
		return nil
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limits.ChallengeRateLimit),
		Burst:     limits.ChallengeRateBurst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(_ echo.Context, identifier string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many challenge requests from "+identifier)
		},
	})
}
