package public

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/trustchain/trustchain/packages/products"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

type Controller struct {
	productService      interfaces.ProductService
	verificationService interfaces.VerificationService
	challengeLimiter    echo.MiddlewareFunc
}

// NewPublicController creates the controller of the unauthenticated routes.
// challengeLimiter guards the challenge-response endpoints and may be nil.
func NewPublicController(
	productService interfaces.ProductService,
	verificationService interfaces.VerificationService,
	challengeLimiter echo.MiddlewareFunc,
) interfaces.APIController {
	return &Controller{
		productService:      productService,
		verificationService: verificationService,
		challengeLimiter:    challengeLimiter,
	}
}

func (c *Controller) Name() string {
	return "public"
}

func (c *Controller) RegisterPublic(publicAPI echoswagger.ApiGroup) {
	var limited []echo.MiddlewareFunc
	if c.challengeLimiter != nil {
		limited = append(limited, c.challengeLimiter)
	}

	publicAPI.GET("/products/:productId", c.getProduct).
		AddParamPath("", "productId", "The product ID").
		AddResponse(http.StatusOK, "The product", products.Product{}, nil).
		AddResponse(http.StatusNotFound, "Unknown product", apierrors.ErrorResponse{}, nil).
		SetOperationId("getProduct").
		SetSummary("Get a product")

	publicAPI.GET("/request-challenge/:productId", c.requestChallenge, limited...).
		AddParamPath("", "productId", "The product ID").
		AddResponse(http.StatusOK, "A fresh challenge for the product's chip", models.ChallengeResponse{}, nil).
		AddResponse(http.StatusBadRequest, "The product has no NFC chip", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusNotFound, "Unknown product", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusTooManyRequests, "Rate limit exceeded", nil, nil).
		SetOperationId("requestChallenge").
		SetSummary("Request an NFC challenge")

	publicAPI.POST("/verify-response", c.verifyResponse, limited...).
		AddParamBody(models.VerifyChipRequest{}, "", "The chip response", true).
		AddResponse(http.StatusOK, "The verification result", models.VerifyChipResponse{}, nil).
		AddResponse(http.StatusBadRequest, "Malformed response", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusNotFound, "No active challenge", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusTooManyRequests, "Rate limit exceeded", nil, nil).
		SetOperationId("verifyResponse").
		SetSummary("Verify the chip response to a challenge")

	publicAPI.POST("/nfc/emulate", c.emulate).
		AddParamBody(models.EmulateChipRequest{}, "", "The challenge to sign", true).
		AddResponse(http.StatusOK, "The emulated chip response", models.EmulateChipResponse{}, nil).
		AddResponse(http.StatusNotFound, "The emulator is disabled", apierrors.ErrorResponse{}, nil).
		SetOperationId("emulateChip").
		SetSummary("Sign a challenge like the product's chip would (development only)")
}

func (c *Controller) RegisterProtected(echoswagger.ApiGroup) {}
