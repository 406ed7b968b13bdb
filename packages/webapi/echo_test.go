package webapi_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/trustchain/trustchain/packages/testutil/testlogger"
	"github.com/trustchain/trustchain/packages/webapi"
)

func testLimits() *webapi.ParametersWebAPILimits {
	return &webapi.ParametersWebAPILimits{
		Timeout:            time.Minute,
		ReadTimeout:        time.Minute,
		WriteTimeout:       time.Minute,
		MaxBodyLength:      "1M",
		ChallengeRateLimit: 0,
	}
}

func TestInternalServerErrors(t *testing.T) {
	logOutput := bytes.NewBuffer(nil)

	e := webapi.NewEcho(false, testLimits(), nil, "", testlogger.NewCapturingLogger(t, logOutput))

	// Add an endpoint that just panics with "foobar"
	exceptionText := "foobar"
	e.GET("/test", func(c echo.Context) error { panic(exceptionText) })

	rec := httptest.NewRecorder()
	e.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

	resBody, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	// assert the exception is not present in the response (prevent leaking errors)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, string(resBody), exceptionText)

	// assert the exception is logged
	require.Contains(t, logOutput.String(), exceptionText)
}

func TestBodyLimit(t *testing.T) {
	limits := testLimits()
	limits.MaxBodyLength = "1K"

	e := webapi.NewEcho(false, limits, nil, "", testlogger.NewLogger(t))
	e.Echo().POST("/echo", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(make([]byte, 4096))))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUnescapedPathParams(t *testing.T) {
	e := webapi.NewEcho(false, testLimits(), nil, "", testlogger.NewLogger(t))
	e.Echo().GET("/items/:id", func(c echo.Context) error { return c.String(http.StatusOK, c.Param("id")) })

	rec := httptest.NewRecorder()
	e.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/foo%40bar", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "foo@bar", rec.Body.String())
}
