package retailer

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/trustchain/trustchain/packages/webapi/controllers/controllerutils"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

func (c *Controller) getBox(e echo.Context) error {
	boxID, err := controllerutils.PathParam(e, "boxId")
	if err != nil {
		return err
	}

	entries, err := c.retailerService.Box(e.Request().Context(), boxID)
	if err != nil {
		return err
	}

	summaries := lo.Map(entries, func(entry *interfaces.BoxEntry, _ int) *models.BoxProductSummary {
		if entry.Err != nil {
			return &models.BoxProductSummary{ProductID: entry.ProductID, Name: models.NameUnavailable}
		}
		return &models.BoxProductSummary{ProductID: entry.ProductID, Name: entry.Product.Name}
	})

	return e.JSON(http.StatusOK, &models.BoxResponse{
		BoxID:    boxID,
		Count:    len(summaries),
		Products: summaries,
	})
}

func (c *Controller) verifyBox(e echo.Context) error {
	boxID, err := controllerutils.PathParam(e, "boxId")
	if err != nil {
		return err
	}

	results, err := c.retailerService.VerifyBox(e.Request().Context(), boxID)
	if err != nil {
		return err
	}

	response := &models.VerifyBoxResponse{
		BoxID:   boxID,
		Results: controllerutils.MapTxResults(results),
	}
	response.Verified = lo.CountBy(results, func(r *interfaces.TxResult) bool { return r.Err == nil })

	return e.JSON(http.StatusOK, response)
}

func (c *Controller) verifySeal(e echo.Context) error {
	request := new(models.SealVerifyRequest)
	if err := controllerutils.BindBody(e, request); err != nil {
		return err
	}

	check, err := c.retailerService.VerifySeal(e.Request().Context(), request.ProductID, request.Code)
	if err != nil {
		return err
	}

	response := &models.SealVerifyResponse{
		Valid:   check.Result.Valid,
		Message: check.Result.Message(),
		Product: check.Product,
	}
	if check.Result.Valid {
		response.MatchedWindow = lo.ToPtr(check.Result.MatchedWindow)
		response.Offset = lo.ToPtr(check.Result.Offset)
	}

	return e.JSON(http.StatusOK, response)
}

func (c *Controller) markSold(e echo.Context) error {
	productID, err := controllerutils.PathParam(e, "productId")
	if err != nil {
		return err
	}

	txHash, err := c.retailerService.MarkSold(e.Request().Context(), productID)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.TxResponse{
		Message: "Product " + productID + " marked as sold",
		TxHash:  txHash.Hex(),
	})
}
