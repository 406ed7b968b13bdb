package webapi

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/inx-app/pkg/httpserver"

	"github.com/trustchain/trustchain/packages/metrics"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
)

type ParametersWebAPILimits struct {
	Timeout            time.Duration `default:"30s" usage:"the timeout after which a long running operation will be canceled"`
	ReadTimeout        time.Duration `default:"10s" usage:"the read timeout for the HTTP request body"`
	WriteTimeout       time.Duration `default:"60s" usage:"the write timeout for the HTTP response body"`
	MaxBodyLength      string        `default:"2M" usage:"the maximum number of characters that the body of an API call may contain"`
	ChallengeRateLimit float64       `default:"1" usage:"the number of NFC challenge requests per second a client may issue, 0 = deactivated"`
	ChallengeRateBurst int           `default:"5" usage:"the burst of NFC challenge requests a client may issue"`
}

//nolint:funlen
func NewEcho(
	debug bool,
	limits *ParametersWebAPILimits,
	metrics *metrics.Provider,
	version string,
	log log.Logger,
) echoswagger.ApiRoot {
	e := httpserver.NewEcho(log, nil, debug)

	e.Server.ReadTimeout = limits.ReadTimeout
	e.Server.WriteTimeout = limits.WriteTimeout

	e.HidePort = true
	e.HTTPErrorHandler = apierrors.HTTPErrorHandler(log)

	e.Pre(middleware.RemoveTrailingSlash())

	if metrics != nil {
		// publish metrics to prometheus component (that exposes a separate http server on another port)
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				start := time.Now()
				err := next(c)

				status := c.Response().Status
				if err != nil {
					status = apierrors.StatusOf(err)
				}

				operation := c.Path()
				if operation == "" {
					operation = "unknown"
				}
				metrics.WebAPIRequest(operation, status, time.Since(start))

				return err
			}
		})
	}

	// timeout middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timeoutCtx, cancel := context.WithTimeout(c.Request().Context(), limits.Timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(timeoutCtx))

			return next(c)
		}
	})

	e.Use(middlewareUnescapePath)

	e.Use(middleware.BodyLimit(limits.MaxBodyLength))

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `${time_rfc3339_nano} ${remote_ip} ${method} ${uri} ${status} error="${error}"` + "\n",
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowHeaders:     []string{"*"},
		AllowMethods:     []string{"*"},
		AllowCredentials: true,
	}))

	swagger := CreateEchoSwagger(e, version)

	if debug {
		swagger.Echo().Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
			log.LogDebugf("API Dump: Request=%q, Response=%q", reqBody, resBody)
		}))
	}

	return swagger
}

func CreateEchoSwagger(e *echo.Echo, version string) echoswagger.ApiRoot {
	echoSwagger := echoswagger.New(e, "/doc", &echoswagger.Info{
		Title:       "TrustChain API",
		Description: "REST API of the TrustChain product authentication node",
		Version:     version,
	})

	echoSwagger.AddSecurityAPIKey("Authorization", "JWT Token", echoswagger.SecurityInHeader).
		SetUI(echoswagger.UISetting{DetachSpec: false, HideTop: false}).
		SetScheme("http", "https")

	echoSwagger.SetRequestContentType(echo.MIMEApplicationJSON)
	echoSwagger.SetResponseContentType(echo.MIMEApplicationJSON)

	return echoSwagger
}
