package apierrors

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/testutil/testlogger"
	"github.com/trustchain/trustchain/packages/users"
)

func TestStatusOf(t *testing.T) {
	for _, tt := range []struct {
		err    error
		status int
	}{
		{ierrors.Wrap(products.ErrProductNotFound, "P-1"), http.StatusNotFound},
		{nfc.ErrChallengeNotFound, http.StatusNotFound},
		{products.ErrInvalidBatch, http.StatusBadRequest},
		{InvalidPropertyError("boxId", nil), http.StatusBadRequest},
		{users.ErrUserExists, http.StatusConflict},
		{ierrors.Wrap(ledger.ErrTransactionReverted, "saleComplete"), http.StatusConflict},
		{ierrors.Join(authentication.ErrUnauthorized, ierrors.New("expired")), http.StatusUnauthorized},
		{authentication.ErrForbidden, http.StatusForbidden},
		{ierrors.Wrap(ledger.ErrLedgerUnavailable, "disabled"), http.StatusServiceUnavailable},
		{echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{ierrors.New("boom"), http.StatusInternalServerError},
	} {
		require.Equal(t, tt.status, StatusOf(tt.err), tt.err.Error())
	}
}

func serve(t *testing.T, logOutput *bytes.Buffer, handlerErr error) (*httptest.ResponseRecorder, *ErrorResponse) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(testlogger.NewCapturingLogger(t, logOutput))
	e.GET("/", func(echo.Context) error { return handlerErr })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	res := new(ErrorResponse)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), res))

	return rec, res
}

func TestHTTPErrorHandlerHidesInternalErrors(t *testing.T) {
	logOutput := new(bytes.Buffer)
	rec, res := serve(t, logOutput, ierrors.New("database exploded"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, http.StatusText(http.StatusInternalServerError), res.Message)
	require.NotContains(t, rec.Body.String(), "exploded")
	require.Contains(t, logOutput.String(), "database exploded")
}

func TestHTTPErrorHandlerClientErrors(t *testing.T) {
	logOutput := new(bytes.Buffer)
	rec, res := serve(t, logOutput, ierrors.Wrapf(products.ErrProductNotFound, "product %s", "B1-9"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, res.Message, "B1-9")
	require.Equal(t, http.StatusText(http.StatusNotFound), res.Error)
	require.Empty(t, logOutput.String())
}

func TestHTTPErrorHandlerLedgerUnavailable(t *testing.T) {
	rec, res := serve(t, new(bytes.Buffer), ierrors.Wrap(ledger.ErrLedgerUnavailable, "ledger disabled"))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, res.Error, "ledger unavailable")
}
