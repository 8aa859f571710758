package restapi

import (
	"strings"

	"github.com/andreyxaxa/Media-Pipeline/config"
	v1 "github.com/andreyxaxa/Media-Pipeline/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Media-Pipeline/internal/usecase"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WrapErrorHandler is installed on the HTTP server so errors raised before
// routing (body over the limit) still get the API's error shape.
func WrapErrorHandler(cfg *config.Config) func(next fiber.ErrorHandler) fiber.ErrorHandler {
	return v1.OversizeUploads(cfg.Upload.MaxSize)
}

// @title Media pipeline
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	assets usecase.AssetUseCase,
	gatherer prometheus.Gatherer,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Prometheus metrics
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Stored files
	app.Static("/"+strings.Trim(cfg.Upload.PublicPrefix, "/"), cfg.Upload.RootDir, fiber.Static{
		Browse: false,
	})

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewAssetRoutes(apiV1Group, assets, v1.Limits{
			MaxSize:       cfg.Upload.MaxSize,
			MaxWidth:      cfg.Upload.MaxWidth,
			ImageTypes:    cfg.Upload.ImageTypes,
			DocumentTypes: cfg.Upload.DocumentTypes,
		}, l)
	}
}
