package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/andreyxaxa/Media-Pipeline/pkg/postgres"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	assetsTable = "assets"

	// Columns
	idColumn            = "id"
	categoryColumn      = "category"
	kindColumn          = "kind"
	pathColumn          = "path"
	thumbnailPathColumn = "thumbnail_path"
	filenameColumn      = "filename"
	originalNameColumn  = "original_name"
	mimeTypeColumn      = "mime_type"
	sizeColumn          = "size"
	createdAtColumn     = "created_at"
	updatedAtColumn     = "updated_at"
)

var assetColumns = []string{
	idColumn,
	categoryColumn,
	kindColumn,
	pathColumn,
	thumbnailPathColumn,
	filenameColumn,
	originalNameColumn,
	mimeTypeColumn,
	sizeColumn,
	createdAtColumn,
	updatedAtColumn,
}

type AssetRepo struct {
	*postgres.Postgres
}

func NewAssetRepo(pg *postgres.Postgres) *AssetRepo {
	return &AssetRepo{pg}
}

func (r *AssetRepo) Create(ctx context.Context, asset *entity.Asset) error {
	sql, args, err := r.Builder.
		Insert(assetsTable).
		Columns(assetColumns...).
		Values(
			asset.ID,
			asset.Category,
			asset.Kind,
			asset.Path,
			asset.ThumbnailPath,
			asset.Filename,
			asset.OriginalName,
			asset.MimeType,
			asset.Size,
			asset.CreatedAt,
			asset.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("AssetRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *AssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	sql, args, err := r.Builder.
		Select(assetColumns...).
		From(assetsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("AssetRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	asset, err := scanAsset(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("AssetRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("AssetRepo - GetByID - executor.QueryRow: %w", err)
	}

	return asset, nil
}

// GetForUpdate locks the row until the surrounding transaction ends.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Asset, error) {
	sql, args, err := r.Builder.
		Select(assetColumns...).
		From(assetsTable).
		Where(squirrel.Eq{idColumn: id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("AssetRepo - GetForUpdate - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	asset, err := scanAsset(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("AssetRepo - GetForUpdate: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("AssetRepo - GetForUpdate - executor.QueryRow: %w", err)
	}

	return asset, nil
}

// List returns the newest assets first. An empty category lists everything.
func (r *AssetRepo) List(ctx context.Context, category string, limit, offset uint64) ([]*entity.Asset, error) {
	q := r.Builder.
		Select(assetColumns...).
		From(assetsTable).
		OrderBy(createdAtColumn+" DESC", idColumn).
		Limit(limit).
		Offset(offset)

	if category != "" {
		q = q.Where(squirrel.Eq{categoryColumn: category})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("AssetRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("AssetRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	assets := make([]*entity.Asset, 0, limit)

	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("AssetRepo - List - rows.Scan: %w", err)
		}

		assets = append(assets, asset)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("AssetRepo - List - rows.Err: %w", err)
	}

	return assets, nil
}

// Update rewrites the file-related columns after a replacement upload.
func (r *AssetRepo) Update(ctx context.Context, asset *entity.Asset) error {
	sql, args, err := r.Builder.
		Update(assetsTable).
		Set(kindColumn, asset.Kind).
		Set(pathColumn, asset.Path).
		Set(thumbnailPathColumn, asset.ThumbnailPath).
		Set(filenameColumn, asset.Filename).
		Set(originalNameColumn, asset.OriginalName).
		Set(mimeTypeColumn, asset.MimeType).
		Set(sizeColumn, asset.Size).
		Set(updatedAtColumn, asset.UpdatedAt).
		Where(squirrel.Eq{idColumn: asset.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetRepo - Update - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetRepo - Update - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetRepo - Update: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *AssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.Builder.
		Delete(assetsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("AssetRepo - Delete - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AssetRepo - Delete - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("AssetRepo - Delete: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var asset entity.Asset

	err := row.Scan(
		&asset.ID,
		&asset.Category,
		&asset.Kind,
		&asset.Path,
		&asset.ThumbnailPath,
		&asset.Filename,
		&asset.OriginalName,
		&asset.MimeType,
		&asset.Size,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &asset, nil
}
