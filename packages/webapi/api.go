package webapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pangpanglabs/echoswagger/v2"

	"github.com/iotaledger/hive.go/log"

	"github.com/trustchain/trustchain/packages/authentication"
	"github.com/trustchain/trustchain/packages/ledger"
	"github.com/trustchain/trustchain/packages/metrics"
	"github.com/trustchain/trustchain/packages/nfc"
	"github.com/trustchain/trustchain/packages/registry"
	"github.com/trustchain/trustchain/packages/seal"
	"github.com/trustchain/trustchain/packages/users"
	"github.com/trustchain/trustchain/packages/webapi/controllers/admin"
	"github.com/trustchain/trustchain/packages/webapi/controllers/auth"
	"github.com/trustchain/trustchain/packages/webapi/controllers/manufacturer"
	"github.com/trustchain/trustchain/packages/webapi/controllers/public"
	"github.com/trustchain/trustchain/packages/webapi/controllers/retailer"
	"github.com/trustchain/trustchain/packages/webapi/interfaces"
	"github.com/trustchain/trustchain/packages/webapi/models"
	"github.com/trustchain/trustchain/packages/webapi/services"
)

const apiPrefix = "/api"

func loadControllers(server echoswagger.ApiRoot, controllersToLoad []interfaces.APIController, authMiddleware echo.MiddlewareFunc) {
	for _, controller := range controllersToLoad {
		publicGroup := server.Group(controller.Name(), apiPrefix)
		controller.RegisterPublic(publicGroup)

		protectedGroup := server.Group(controller.Name(), apiPrefix, authMiddleware).
			SetSecurity("Authorization")
		controller.RegisterProtected(protectedGroup)
	}
}

func addRootEndpoints(server echoswagger.ApiRoot, productService interfaces.ProductService) {
	server.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "SERVER WORKING")
	}).SetOperationId("root").SetSummary("Check that the server is up")

	server.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, &models.HealthResponse{
			Status: "ok",
			Ledger: productService.LedgerAvailable(),
		})
	}).
		AddResponse(http.StatusOK, "The node is healthy", models.HealthResponse{}, nil).
		SetOperationId("getHealth").
		SetSummary("Get the health of the node")
}

func Init(
	logger log.Logger,
	server echoswagger.ApiRoot,
	userManager *users.UserManager,
	jwtAuth *authentication.JWTAuth,
	ledgerClient ledger.Ledger,
	reg *registry.Registry,
	verifier *seal.Verifier,
	challenges *nfc.ChallengeStore,
	challengeTTL time.Duration,
	emulator *nfc.Emulator,
	emulatorEnabled bool,
	metricsProvider *metrics.Provider,
	limits *ParametersWebAPILimits,
) {
	authService := services.NewAuthService(logger, userManager, jwtAuth)
	productService := services.NewProductService(logger, ledgerClient, reg)
	verificationService := services.NewVerificationService(logger, productService, challenges, challengeTTL, emulator, emulatorEnabled, metricsProvider)
	manufacturerService := services.NewManufacturerService(logger, ledgerClient, reg, verificationService)
	retailerService := services.NewRetailerService(logger, ledgerClient, reg, productService, verifier, metricsProvider)

	controllersToLoad := []interfaces.APIController{
		auth.NewAuthController(authService),
		public.NewPublicController(productService, verificationService, NewChallengeLimiter(limits)),
		manufacturer.NewManufacturerController(manufacturerService),
		retailer.NewRetailerController(retailerService),
		admin.NewAdminController(retailerService),
	}

	addRootEndpoints(server, productService)
	loadControllers(server, controllersToLoad, jwtAuth.Middleware())

	if !ledger.IsAvailable(ledgerClient) {
		logger.LogWarn("ledger is unavailable, ledger backed routes answer with 503")
	}
}
