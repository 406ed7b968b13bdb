package apierrors

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/seal"
	"github.com/trustchain/trustchain/packages/users"
)

var (
	ErrInvalidRequest = ierrors.New("invalid request")
	ErrNotFound       = ierrors.New("not found")
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message" swagger:"required,desc(Human readable description)"`
	Error   string `json:"error,omitempty" swagger:"desc(The underlying error)"`
}

var statusMapping = []struct {
	errs   []error
	status int
}{
	{[]error{ErrNotFound, products.ErrProductNotFound, products.ErrBatchNotFound, nfc.ErrChallengeNotFound}, http.StatusNotFound},
	{[]error{ErrInvalidRequest, products.ErrInvalidBatch, products.ErrInvalidProduct, products.ErrInvalidPrice, users.ErrInvalidUser, users.ErrUnknownRole, seal.ErrMalformedCode, seal.ErrMissingSeed, nfc.ErrInvalidResponse}, http.StatusBadRequest},
	{[]error{products.ErrBatchExists, products.ErrBatchShipped, products.ErrBoxInUse, products.ErrBoxShipped, products.ErrProductExists, users.ErrUserExists, ledger.ErrTransactionReverted}, http.StatusConflict},
	{[]error{authentication.ErrUnauthorized, users.ErrInvalidCredentials}, http.StatusUnauthorized},
	{[]error{authentication.ErrForbidden}, http.StatusForbidden},
	{[]error{ledger.ErrLedgerUnavailable}, http.StatusServiceUnavailable},
}

// StatusOf returns the HTTP status a handler error maps to.
func StatusOf(err error) int {
	for _, m := range statusMapping {
		for _, target := range m.errs {
			if ierrors.Is(err, target) {
				return m.status
			}
		}
	}

	var httpErr *echo.HTTPError
	if ierrors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}

// InvalidPropertyError reports a malformed request property.
func InvalidPropertyError(name string, err error) error {
	if err == nil {
		return ierrors.Wrapf(ErrInvalidRequest, "invalid property %q", name)
	}
	return ierrors.Wrapf(ErrInvalidRequest, "invalid property %q: %s", name, err)
}

func message(status int, err error) string {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return http.StatusText(status)
	}

	var httpErr *echo.HTTPError
	if ierrors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}

	return err.Error()
}

// HTTPErrorHandler renders errors as ErrorResponse. Internal errors are logged and
// their text is kept out of the response.
func HTTPErrorHandler(log log.Logger) func(err error, c echo.Context) {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := StatusOf(err)
		response := &ErrorResponse{Message: message(status, err)}
		if status >= http.StatusInternalServerError {
			if status != http.StatusServiceUnavailable {
				log.LogErrorf("request %s %s failed: %s", c.Request().Method, c.Request().URL.Path, err)
			} else {
				response.Error = err.Error()
			}
		} else {
			response.Error = http.StatusText(status)
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(status)
		} else {
			sendErr = c.JSON(status, response)
		}
		if sendErr != nil {
			log.LogWarnf("failed to send error response: %s", sendErr)
		}
	}
}
