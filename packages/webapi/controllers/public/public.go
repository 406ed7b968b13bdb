package public

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustchain/trustchain/packages/webapi/controllers/controllerutils"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

func (c *Controller) getProduct(e echo.Context) error {
	productID, err := controllerutils.PathParam(e, "productId")
	if err != nil {
		return err
	}

	product, err := c.productService.GetProduct(e.Request().Context(), productID)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, product)
}

func (c *Controller) requestChallenge(e echo.Context) error {
	productID, err := controllerutils.PathParam(e, "productId")
	if err != nil {
		return err
	}

	challenge, ttl, err := c.verificationService.RequestChallenge(e.Request().Context(), productID)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.ChallengeResponse{
		ProductID: productID,
		Challenge: challenge,
		ExpiresIn: int64(ttl.Seconds()),
	})
}

func (c *Controller) verifyResponse(e echo.Context) error {
	request := new(models.VerifyChipRequest)
	if err := controllerutils.BindBody(e, request); err != nil {
		return err
	}
	if request.ProductID == "" {
		return controllerutils.MissingProperty("productId")
	}
	if request.Response == "" {
		return controllerutils.MissingProperty("response")
	}

	check, err := c.verificationService.VerifyResponse(e.Request().Context(), request.ProductID, request.Response)
	if err != nil {
		return err
	}

	message := "chip verified, product is authentic"
	if !check.Authentic {
		message = "chip signature does not match the product"
	}

	return e.JSON(http.StatusOK, &models.VerifyChipResponse{
		Authentic: check.Authentic,
		Signer:    check.Signer.Hex(),
		Message:   message,
	})
}

func (c *Controller) emulate(e echo.Context) error {
	request := new(models.EmulateChipRequest)
	if err := controllerutils.BindBody(e, request); err != nil {
		return err
	}
	if request.ProductID == "" {
		return controllerutils.MissingProperty("productId")
	}
	if request.Challenge == "" {
		return controllerutils.MissingProperty("challenge")
	}

	response, address, err := c.verificationService.Emulate(request.ProductID, request.Challenge)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.EmulateChipResponse{
		Response: response,
		Address:  address.Hex(),
	})
}
