package repo

import (
	"context"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/google/uuid"
)

type (
	FileStore interface {
		Resolve(subdir, ext string) (entity.StorageTarget, error)
		Place(src string, target entity.StorageTarget) error
		RelativeOf(absPath string) (string, error)
		Remove(relPath string) (bool, error)
		SweepStale(olderThan time.Duration) (int, error)
	}

	AssetRepo interface {
		Create(ctx context.Context, asset *entity.Asset) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error)
		GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Asset, error)
		List(ctx context.Context, category string, limit, offset uint64) ([]*entity.Asset, error)
		Update(ctx context.Context, asset *entity.Asset) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
