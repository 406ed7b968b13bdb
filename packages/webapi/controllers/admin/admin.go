package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/webapi/controllers/controllerutils"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

func (c *Controller) getBox(e echo.Context) error {
	boxID, err := controllerutils.PathParam(e, "boxId")
	if err != nil {
		return err
	}

	ctx := e.Request().Context()
	entries, err := c.retailerService.Box(ctx, boxID)
	if err != nil {
		return err
	}
	shipped, err := c.retailerService.IsBoxShipped(ctx, boxID)
	if err != nil {
		return err
	}

	response := &models.BoxDetailsResponse{
		BoxID:    boxID,
		Shipped:  shipped,
		Count:    len(entries),
		Products: make([]*products.Product, 0, len(entries)),
	}
	for _, entry := range entries {
		if entry.Err != nil {
			response.Missing = append(response.Missing, entry.ProductID)
			continue
		}
		response.Products = append(response.Products, entry.Product)
	}

	return e.JSON(http.StatusOK, response)
}

func (c *Controller) shipBox(e echo.Context) error {
	boxID, err := controllerutils.PathParam(e, "boxId")
	if err != nil {
		return err
	}

	txHash, err := c.retailerService.ShipBox(e.Request().Context(), boxID)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.TxResponse{
		Message: "Box " + boxID + " marked as shipped",
		TxHash:  txHash.Hex(),
	})
}

func (c *Controller) verifyProduct(e echo.Context) error {
	productID, err := controllerutils.PathParam(e, "productId")
	if err != nil {
		return err
	}

	txHash, err := c.retailerService.VerifyProduct(e.Request().Context(), productID)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.TxResponse{
		Message: "Product " + productID + " verified",
		TxHash:  txHash.Hex(),
	})
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
