package manufacturer

import (
	"net/http"

	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/users"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

// activityLimit is the number of entries shown on the dashboard.
const activityLimit = 5

type Controller struct {
	manufacturerService interfaces.ManufacturerService
}

func NewManufacturerController(manufacturerService interfaces.ManufacturerService) interfaces.APIController {
	return &Controller{
		manufacturerService: manufacturerService,
	}
}

func (c *Controller) Name() string {
	return "manufacturer"
}

func (c *Controller) RegisterPublic(echoswagger.ApiGroup) {}

func (c *Controller) RegisterProtected(protectedAPI echoswagger.ApiGroup) {
	requireRole := authentication.RequireRole(users.RoleManufacturer, users.RoleAdmin)

	protectedAPI.GET("/manufacturer/stats", c.getStats, requireRole).
		AddResponse(http.StatusOK, "Dashboard counters", models.StatsResponse{}, nil).
		SetOperationId("getStats").
		SetSummary("Get the manufacturer dashboard counters")

	protectedAPI.GET("/manufacturer/activity", c.getActivity, requireRole).
		AddResponse(http.StatusOK, "Latest activity", []models.ActivityResponse{}, nil).
		SetOperationId("getActivity").
		SetSummary("Get the latest lifecycle events")

	protectedAPI.GET("/manufacturer/batches", c.getBatches, requireRole).
		AddResponse(http.StatusOK, "All batches, newest first", []products.Batch{}, nil).
		SetOperationId("getBatches").
		SetSummary("Get all registered batches")

	protectedAPI.POST("/manufacturer/prepare-batch", c.prepareBatch, requireRole).
		AddParamBody(products.Batch{}, "", "The batch", true).
		AddResponse(http.StatusOK, "The derived products", models.PrepareBatchResponse{}, nil).
		AddResponse(http.StatusBadRequest, "Invalid batch data", apierrors.ErrorResponse{}, nil).
		SetOperationId("prepareBatch").
		SetSummary("Derive the products of a batch without registering it")

	protectedAPI.POST("/manufacturer/register", c.registerBatch, requireRole).
		AddParamBody(products.Batch{}, "", "The batch", true).
		AddResponse(http.StatusOK, "The batch was registered", models.RegisterBatchResponse{}, nil).
		AddResponse(http.StatusBadRequest, "Invalid batch data", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusConflict, "The batch exists already or its box is in use", apierrors.ErrorResponse{}, nil).
		SetOperationId("registerBatch").
		SetSummary("Register a batch and its products")

	protectedAPI.POST("/manufacturer/products", c.registerProduct, requireRole).
		AddParamBody(products.Product{}, "", "The product", true).
		AddResponse(http.StatusOK, "The product was registered", models.RegisterProductResponse{}, nil).
		AddResponse(http.StatusBadRequest, "Invalid product data", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusConflict, "The product exists already or its box was shipped", apierrors.ErrorResponse{}, nil).
		SetOperationId("registerProduct").
		SetSummary("Register a single product into an unshipped box")

	protectedAPI.POST("/manufacturer/ship", c.shipBatch, requireRole).
		AddParamBody(models.ShipBatchRequest{}, "", "The batch to ship", true).
		AddResponse(http.StatusOK, "The batch was shipped", models.ShipBatchResponse{}, nil).
		AddResponse(http.StatusNotFound, "Unknown batch", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusConflict, "The batch was shipped already", apierrors.ErrorResponse{}, nil).
		SetOperationId("shipBatch").
		SetSummary("Ship the box of a batch")
}
