package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustchain/trustchain/packages/users"
	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/controllers/controllerutils"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

func (c *Controller) signUp(e echo.Context) error {
	request := new(models.SignUpRequest)
	if err := controllerutils.BindBody(e, request); err != nil {
		return err
	}

	user, err := c.authService.SignUp(request.ID, request.Email, request.Password)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusCreated, &models.SignUpResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	})
}

func (c *Controller) login(e echo.Context) error {
	request := new(models.LoginRequest)
	if err := controllerutils.BindBody(e, request); err != nil {
		return err
	}

	role, err := users.ParseRole(request.Role)
	if err != nil {
		return apierrors.InvalidPropertyError("role", err)
	}

	token, err := c.authService.Login(role, request.ID, request.Password)
	if err != nil {
		return err
	}

	return e.JSON(http.StatusOK, &models.LoginResponse{
		Token: token,
		Role:  string(role),
	})
}
