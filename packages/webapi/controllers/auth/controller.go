package auth

import (
	"net/http"

	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/trustchain/trustchain/packages/webapi/apierrors"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
)

type Controller struct {
	authService interfaces.AuthService
}

func NewAuthController(authService interfaces.AuthService) interfaces.APIController {
	return &Controller{
		authService: authService,
	}
}

func (c *Controller) Name() string {
	return "auth"
}

func (c *Controller) RegisterPublic(publicAPI echoswagger.ApiGroup) {
	publicAPI.POST("/auth/signup", c.signUp).
		AddParamBody(models.SignUpRequest{}, "", "The account to create", true).
		AddResponse(http.StatusCreated, "The account was created", models.SignUpResponse{}, nil).
		AddResponse(http.StatusBadRequest, "Invalid account data", apierrors.ErrorResponse{}, nil).
		AddResponse(http.StatusConflict, "The id or email is taken", apierrors.ErrorResponse{}, nil).
		SetOperationId("signUp").
		SetSummary("Create an end user account")

	publicAPI.POST("/auth/login", c.login).
		AddParamBody(models.LoginRequest{}, "", "The credentials", true).
		AddResponse(http.StatusOK, "Login was successful", models.LoginResponse{}, nil).
		AddResponse(http.StatusUnauthorized, "Invalid credentials", apierrors.ErrorResponse{}, nil).
		SetOperationId("login").
		SetSummary("Log in and obtain a bearer token")
}

func (c *Controller) RegisterProtected(echoswagger.ApiGroup) {}
