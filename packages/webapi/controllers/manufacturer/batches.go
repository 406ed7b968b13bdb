package manufacturer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/webapi/controllers/controllerutils"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

func (c *Controller) getStats(e echo.Context) error {
	stats, err := c.manufacturerService.Stats()
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.StatsResponse{
		TotalBatches:      stats.TotalBatches,
		TotalProducts:     stats.TotalProducts,
		TotalShipped:      stats.TotalShipped,
		TotalTransactions: stats.TotalTransactions,
	})
}

func (c *Controller) getActivity(e echo.Context) error {
	entries, err := c.manufacturerService.Activity(activityLimit)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, models.MapActivityResponse(entries))
}

func (c *Controller) getBatches(e echo.Context) error {
	batches, err := c.manufacturerService.Batches()
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, batches)
}

func (c *Controller) prepareBatch(e echo.Context) error {
	batch := new(products.Batch)
	if err := controllerutils.BindBody(e, batch); err != nil {
		return err
	}

	items, err := c.manufacturerService.PrepareBatch(batch)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.PrepareBatchResponse{Items: items})
}

func (c *Controller) registerBatch(e echo.Context) error {
	batch := new(products.Batch)
	if err := controllerutils.BindBody(e, batch); err != nil {
		return err
	}

	txHash, items, err := c.manufacturerService.RegisterBatch(e.Request().Context(), batch)
	if err != nil {
		return err
	}

	response := &models.RegisterBatchResponse{
		Message: "Batch registered successfully",
		Items:   items,
	}
	if txHash != nil {
		response.TxHash = txHash.Hex()
	} else {
		response.Message = "Batch registered locally, the ledger is unavailable"
	}

	return e.JSON(http.StatusOK, response)
}

func (c *Controller) registerProduct(e echo.Context) error {
	product := new(products.Product)
	if err := controllerutils.BindBody(e, product); err != nil {
		return err
	}

	txHash, item, err := c.manufacturerService.RegisterProduct(e.Request().Context(), product)
	if err != nil {
		return err
	}

	response := &models.RegisterProductResponse{
		Message: "Product registered successfully",
		Product: item,
	}
	if txHash != nil {
		response.TxHash = txHash.Hex()
	} else {
		response.Message = "Product registered locally, the ledger is unavailable"
	}

	return e.JSON(http.StatusOK, response)
}

func (c *Controller) shipBatch(e echo.Context) error {
	request := new(models.ShipBatchRequest)
	if err := controllerutils.BindBody(e, request); err != nil {
		return err
	}
	if request.BatchID == "" {
		return controllerutils.MissingProperty("batchId")
	}

	batch, txHash, err := c.manufacturerService.ShipBatch(e.Request().Context(), request.BatchID)
	if err != nil {
		return err
	}

	response := &models.ShipBatchResponse{
		Message: "Batch shipped",
		BatchID: batch.BatchID,
		BoxID:   batch.BoxID,
	}
	if txHash != nil {
		response.TxHash = txHash.Hex()
	}

	return e.JSON(http.StatusOK, response)
}
