package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/andreyxaxa/Media-Pipeline/internal/repo"
	"github.com/andreyxaxa/Media-Pipeline/internal/usecase"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"github.com/google/uuid"
)

// AssetUseCase keeps the asset ledger in step with the files on disk.
// No transaction spans both: a failed ledger write removes the files it
// just produced, a failed file removal only leaves an orphan.
type AssetUseCase struct {
	media      usecase.MediaUseCase
	assetRepo  repo.AssetRepo
	transactor repo.Transactor
	now        func() time.Time

	logger logger.Interface
}

func New(
	media usecase.MediaUseCase,
	assetRepo repo.AssetRepo,
	transactor repo.Transactor,
	l logger.Interface,
) *AssetUseCase {
	return &AssetUseCase{
		media:      media,
		assetRepo:  assetRepo,
		transactor: transactor,
		now:        time.Now,
		logger:     l,
	}
}

func (uc *AssetUseCase) Upload(
	ctx context.Context,
	desc entity.UploadDescriptor,
	category string,
	opts entity.UploadOptions,
) (*entity.Asset, error) {
	result, err := uc.run(ctx, desc, category, opts)
	if err != nil {
		return nil, fmt.Errorf("AssetUseCase - Upload - uc.run: %w", err)
	}

	now := uc.now().UTC()
	asset := &entity.Asset{
		ID:        uuid.New(),
		Category:  category,
		CreatedAt: now,
	}
	fill(asset, desc, opts.Kind, result, now)

	err = uc.assetRepo.Create(ctx, asset)
	if err != nil {
		uc.discard(result)

		return nil, fmt.Errorf("AssetUseCase - Upload - uc.assetRepo.Create: %w", err)
	}

	return asset, nil
}

// Replace swaps the files behind an existing asset. The row stays locked
// while the new file is processed; the old files are removed only after the
// ledger points at the new ones.
func (uc *AssetUseCase) Replace(
	ctx context.Context,
	id uuid.UUID,
	desc entity.UploadDescriptor,
	opts entity.UploadOptions,
) (*entity.Asset, error) {
	var asset *entity.Asset
	var result *entity.UploadResult
	var oldPath, oldThumb string

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		asset, err = uc.assetRepo.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("uc.assetRepo.GetForUpdate: %w", err)
		}

		oldPath, oldThumb = asset.Path, deref(asset.ThumbnailPath)

		result, err = uc.run(ctx, desc, asset.Category, opts)
		if err != nil {
			return fmt.Errorf("uc.run: %w", err)
		}

		fill(asset, desc, opts.Kind, result, uc.now().UTC())

		err = uc.assetRepo.Update(ctx, asset)
		if err != nil {
			return fmt.Errorf("uc.assetRepo.Update: %w", err)
		}

		return nil
	})
	if err != nil {
		if result != nil {
			uc.discard(result)
		}

		return nil, fmt.Errorf("AssetUseCase - Replace - uc.transactor.WithinTransaction: %w", err)
	}

	if !uc.media.DeleteWithThumbnail(oldPath, oldThumb) {
		uc.logger.Warn("asset %s: previous file %s was not removed", id, oldPath)
	}

	return asset, nil
}

func (uc *AssetUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	var asset *entity.Asset

	// 1. ledger, the paths are read under the same lock
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error

		asset, err = uc.assetRepo.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("uc.assetRepo.GetForUpdate: %w", err)
		}

		err = uc.assetRepo.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("uc.assetRepo.Delete: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("AssetUseCase - Delete - uc.transactor.WithinTransaction: %w", err)
	}

	// 2. files
	if !uc.media.DeleteWithThumbnail(asset.Path, deref(asset.ThumbnailPath)) {
		uc.logger.Warn("asset %s: file %s was not removed", id, asset.Path)
	}

	return nil
}

func (uc *AssetUseCase) Get(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	asset, err := uc.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("AssetUseCase - Get - uc.assetRepo.GetByID: %w", err)
	}

	return asset, nil
}

func (uc *AssetUseCase) List(ctx context.Context, category string, limit, offset uint64) ([]*entity.Asset, error) {
	assets, err := uc.assetRepo.List(ctx, category, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("AssetUseCase - List - uc.assetRepo.List: %w", err)
	}

	return assets, nil
}

func (uc *AssetUseCase) run(
	ctx context.Context,
	desc entity.UploadDescriptor,
	subdir string,
	opts entity.UploadOptions,
) (*entity.UploadResult, error) {
	var result *entity.UploadResult

	switch opts.Kind {
	case entity.CategoryImage:
		result = uc.media.UploadImage(ctx, desc, subdir, opts.CreateThumbnail, opts.MaxWidth)
	case entity.CategoryDocument:
		result = uc.media.UploadDocument(ctx, desc, subdir)
	default:
		return nil, fmt.Errorf("kind %q: %w", opts.Kind, errs.ErrInvalidKind)
	}

	if !result.Success {
		return nil, entity.NewPipelineError(result)
	}

	return result, nil
}

func (uc *AssetUseCase) discard(result *entity.UploadResult) {
	if !uc.media.DeleteWithThumbnail(result.Path, deref(result.ThumbnailPath)) {
		uc.logger.Error(errors.New("orphaned file"), "AssetUseCase - discard - "+result.Path)
	}
}

func fill(asset *entity.Asset, desc entity.UploadDescriptor, kind entity.Category, result *entity.UploadResult, now time.Time) {
	asset.Kind = kind
	asset.Path = result.Path
	asset.ThumbnailPath = result.ThumbnailPath
	asset.Filename = result.Filename
	asset.OriginalName = desc.OriginalName
	asset.MimeType = result.MimeType
	asset.Size = result.Size
	asset.UpdatedAt = now
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
