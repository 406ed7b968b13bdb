package controllerutils

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/iotaledger/hive.go/ierrors"

	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

// BindBody decodes the JSON body of the request into v.
func BindBody(e echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(e, v); err != nil {
		return apierrors.InvalidPropertyError("body", err)
	}

	return nil
}

// PathParam returns the trimmed path parameter, or an error if it is empty.
func PathParam(e echo.Context, name string) (string, error) {
	value := strings.TrimSpace(e.Param(name))
	if value == "" {
		return "", MissingProperty(name)
	}

	return value, nil
}

func MissingProperty(name string) error {
	return apierrors.InvalidPropertyError(name, ierrors.New("is required"))
}

func MapTxResults(results []*interfaces.TxResult) []*models.ProductTxResult {
	return lo.Map(results, func(r *interfaces.TxResult, _ int) *models.ProductTxResult {
		if r.Err != nil {
			return &models.ProductTxResult{ProductID: r.ProductID, Error: r.Err.Error()}
		}
		return &models.ProductTxResult{ProductID: r.ProductID, TxHash: r.TxHash.Hex()}
	})
}
