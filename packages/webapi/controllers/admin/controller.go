package admin

import (
	"net/http"

	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/users"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

type Controller struct {
	retailerService interfaces.RetailerService
}

func NewAdminController(retailerService interfaces.RetailerService) interfaces.APIController {
	return &Controller{
		retailerService: retailerService,
	}
}

func (c *Controller) Name() string {
	return "admin"
}

func (c *Controller) RegisterPublic(echoswagger.ApiGroup) {}

func (c *Controller) RegisterProtected(protectedAPI echoswagger.ApiGroup) {
	requireAdmin := authentication.RequireRole(users.RoleAdmin)

	protectedAPI.GET("/admin/boxes/:boxId", c.getBox, requireAdmin).
		AddParamPath("", "boxId", "The box ID").
		AddResponse(http.StatusOK, "The full products of the box", models.BoxDetailsResponse{}, nil).
		AddResponse(http.StatusServiceUnavailable, "The ledger is unavailable", apierrors.ErrorResponse{}, nil).
		SetOperationId("getAdminBox").
		SetSummary("Get a box with all product details")

	protectedAPI.POST("/admin/boxes/:boxId/ship", c.shipBox, requireAdmin).
		AddParamPath("", "boxId", "The box ID").
		AddResponse(http.StatusOK, "The box was shipped", models.TxResponse{}, nil).
		AddResponse(http.StatusConflict, "The box cannot be shipped", apierrors.ErrorResponse{}, nil).
		SetOperationId("shipBox").
		SetSummary("Ship a box")

	protectedAPI.POST("/admin/products/:productId/verify", c.verifyProduct, requireAdmin).
		AddParamPath("", "productId", "The product ID").
		AddResponse(http.StatusOK, "The product was verified", models.TxResponse{}, nil).
		AddResponse(http.StatusConflict, "The product cannot be verified", apierrors.ErrorResponse{}, nil).
		SetOperationId("verifyProduct").
		SetSummary("Confirm retailer receipt of a single product")

	protectedAPI.POST("/admin/products/:productId/sold", c.markSold, requireAdmin).
		AddParamPath("", "productId", "The product ID").
		AddResponse(http.StatusOK, "The sale was recorded", models.TxResponse{}, nil).
		AddResponse(http.StatusConflict, "The product cannot be sold", apierrors.ErrorResponse{}, nil).
		SetOperationId("adminMarkSold").
		SetSummary("Record the sale of a product")
}
