package usecase

import (
	"context"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/google/uuid"
)

type (
	MediaUseCase interface {
		UploadImage(ctx context.Context, desc entity.UploadDescriptor, subdir string, createThumbnail bool, maxWidth int) *entity.UploadResult
		UploadDocument(ctx context.Context, desc entity.UploadDescriptor, subdir string) *entity.UploadResult
		Delete(relPath string) bool
		DeleteWithThumbnail(relPath, thumbRelPath string) bool
	}

	MaintenanceUseCase interface {
		SweepStale(ctx context.Context, olderThan time.Duration) (int, error)
	}

	AssetUseCase interface {
		Upload(ctx context.Context, desc entity.UploadDescriptor, category string, opts entity.UploadOptions) (*entity.Asset, error)
		Replace(ctx context.Context, id uuid.UUID, desc entity.UploadDescriptor, opts entity.UploadOptions) (*entity.Asset, error)
		Delete(ctx context.Context, id uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*entity.Asset, error)
		List(ctx context.Context, category string, limit, offset uint64) ([]*entity.Asset, error)
	}
)
