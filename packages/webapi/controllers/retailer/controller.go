package retailer

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

func NewRetailerController(retailerService interfaces.RetailerService) interfaces.APIController {
	return &Controller{
		retailerService: retailerService,
	}
}

func (c *Controller) Name() string {
	return "retailer"
}

func (c *Controller) RegisterPublic(echoswagger.ApiGroup) {}

func (c *Controller) RegisterProtected(protectedAPI echoswagger.ApiGroup) {
	requireRole := authentication.RequireRole(users.RoleRetailer, users.RoleAdmin)

	protectedAPI.GET("/retailer/boxes/:boxId", c.getBox, requireRole).
		AddParamPath("", "boxId", "The box ID").
		AddResponse(http.StatusOK, "The products of the box", models.BoxResponse{}, nil).
		AddResponse(http.StatusServiceUnavailable, "The ledger is unavailable", apierrors.ErrorResponse{}, nil).
		SetOperationId("getRetailerBox").
		SetSummary("List the products of an arriving box")

	protectedAPI.POST("/retailer/boxes/:boxId/verify", c.verifyBox, requireRole).
		AddParamPath("", "boxId", "The box ID").
		AddResponse(http.StatusOK, "Per product verification results", models.VerifyBoxResponse{}, nil).
		AddResponse(http.StatusNotFound, "The box is empty or unknown", apierrors.ErrorResponse{}, nil).
		SetOperationId("verifyBox").
		SetSummary("Confirm receipt of every product of a box")

	protectedAPI.POST("/retailer/seal/verify", c.verifySeal, requireRole).
		AddParamBody(models.SealVerifyRequest{}, "", "The scanned seal", true).
		AddResponse(http.StatusOK, "The verification result", models.SealVerifyResponse{}, nil).
		AddResponse(http.StatusBadRequest, "Malformed code or product without seal", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusNotFound, "Unknown product", apierrors.ErrorResponse{}, nil).
		SetOperationId("verifySeal").
		SetSummary("Verify a dynamic seal code")

	protectedAPI.POST("/retailer/products/:productId/sold", c.markSold, requireRole).
		AddParamPath("", "productId", "The product ID").
		AddResponse(http.StatusOK, "The sale was recorded", models.TxResponse{}, nil).
		AddResponse(http.StatusConflict, "The product cannot be sold", apierrors.ErrorResponse{}, nil).
		SetOperationId("markSold").
		SetSummary("Record the sale of a product")
}
