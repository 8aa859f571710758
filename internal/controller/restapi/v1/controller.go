package v1

import (
	"github.com/andreyxaxa/Media-Pipeline/internal/usecase"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
)

type V1 struct {
	assets usecase.AssetUseCase
	limits Limits
	logger logger.Interface
}
