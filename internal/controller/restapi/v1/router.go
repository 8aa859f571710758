package v1

import (
	"github.com/andreyxaxa/Media-Pipeline/internal/usecase"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

func NewAssetRoutes(apiV1Group fiber.Router, assets usecase.AssetUseCase, limits Limits, l logger.Interface) {
	r := &V1{assets: assets, limits: limits, logger: l}

	{
		// API
		apiV1Group.Post("/assets/:category", r.uploadAsset)
		apiV1Group.Put("/assets/:id", r.replaceAsset)
		apiV1Group.Get("/assets/:id", r.getAsset)
		apiV1Group.Get("/assets", r.listAssets)
		apiV1Group.Delete("/assets/:id", r.deleteAsset)

		// UI
		apiV1Group.Get("/", r.showUI)
	}
}
