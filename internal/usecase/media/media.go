package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/andreyxaxa/Media-Pipeline/internal/infrastructure"
	"github.com/andreyxaxa/Media-Pipeline/internal/repo"
	"github.com/andreyxaxa/Media-Pipeline/pkg/logger"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"github.com/gabriel-vasile/mimetype"
)

const (
	stageValidate  = "validate"
	stageStore     = "store"
	stageTranscode = "transcode"
	stageThumbnail = "thumbnail"

	outcomeStored   = "stored"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
	outcomeDeleted  = "deleted"
	outcomeMissing  = "missing"
)

type Options struct {
	MaxSize     int64
	MaxWidth    int
	ThumbWidth  int
	ThumbHeight int
}

// MediaUseCase runs the upload pipeline: validate, place, transcode and
// optionally thumbnail. It also owns deletion of stored files.
type MediaUseCase struct {
	validator *Validator
	store     repo.FileStore
	processor infrastructure.ImageProcessor
	codecs    infrastructure.CodecRegistry
	observer  infrastructure.PipelineObserver
	opts      Options

	logger logger.Interface
}

func New(
	validator *Validator,
	store repo.FileStore,
	processor infrastructure.ImageProcessor,
	codecs infrastructure.CodecRegistry,
	observer infrastructure.PipelineObserver,
	opts Options,
	l logger.Interface,
) *MediaUseCase {
	return &MediaUseCase{
		validator: validator,
		store:     store,
		processor: processor,
		codecs:    codecs,
		observer:  observer,
		opts:      opts,
		logger:    l,
	}
}

// UploadImage stores an image under subdir, downsizing it to maxWidth
// (the configured default when maxWidth <= 0) and optionally deriving a
// thumbnail. Files already placed are kept when a later stage fails.
func (uc *MediaUseCase) UploadImage(
	ctx context.Context,
	desc entity.UploadDescriptor,
	subdir string,
	createThumbnail bool,
	maxWidth int,
) *entity.UploadResult {
	started := time.Now()
	detected, problems := uc.validator.Validate(desc, entity.CategoryImage, uc.opts.MaxSize)
	uc.observer.ObserveStage(stageValidate, time.Since(started))
	if len(problems) > 0 {
		uc.observer.ObserveUpload(subdir, outcomeRejected)
		return entity.Failed(problems...)
	}

	c, ok := uc.codecs.ForMIME(detected)
	if !ok {
		uc.observer.ObserveUpload(subdir, outcomeRejected)
		return entity.Failed(&entity.UploadError{
			Kind:     entity.KindUnsupportedType,
			Field:    "file",
			Detected: detected,
			Err:      errs.ErrUnsupportedFormat,
		})
	}

	target, uerr := uc.place(ctx, desc, subdir, extensionFor(desc.OriginalName, detected, c.Extension()))
	if uerr != nil {
		return uc.fail(subdir, "MediaUseCase - UploadImage - uc.place", uerr)
	}

	if maxWidth <= 0 {
		maxWidth = uc.opts.MaxWidth
	}

	started = time.Now()
	resized, err := uc.processor.Transcode(ctx, target.AbsPath, c, maxWidth)
	uc.observer.ObserveStage(stageTranscode, time.Since(started))
	if err != nil {
		// no rollback: the placed original stays on disk
		return uc.fail(subdir, "MediaUseCase - UploadImage - uc.processor.Transcode", processingError(err))
	}
	if resized {
		uc.logger.Debug("media - resized %s to max width %d", target.RelativePath, maxWidth)
	}

	result := entity.Succeeded(target, detected, fileSize(target.AbsPath), "image uploaded")

	if createThumbnail {
		started = time.Now()
		thumbAbs, err := uc.processor.Thumbnail(ctx, target.AbsPath, c, uc.opts.ThumbWidth, uc.opts.ThumbHeight)
		uc.observer.ObserveStage(stageThumbnail, time.Since(started))

		var thumbRel string
		if err == nil {
			thumbRel, err = uc.store.RelativeOf(thumbAbs)
		}
		if err != nil {
			uc.logger.Warn("media - thumbnail for %s not created: %v", target.RelativePath, err)
		} else {
			result.ThumbnailPath = &thumbRel
		}
	}

	uc.observer.ObserveUpload(subdir, outcomeStored)

	return result
}

// UploadDocument stores a document as received, no processing is applied.
func (uc *MediaUseCase) UploadDocument(ctx context.Context, desc entity.UploadDescriptor, subdir string) *entity.UploadResult {
	started := time.Now()
	detected, problems := uc.validator.Validate(desc, entity.CategoryDocument, uc.opts.MaxSize)
	uc.observer.ObserveStage(stageValidate, time.Since(started))
	if len(problems) > 0 {
		uc.observer.ObserveUpload(subdir, outcomeRejected)
		return entity.Failed(problems...)
	}

	canonical := ""
	if mt := mimetype.Lookup(detected); mt != nil {
		canonical = strings.TrimPrefix(mt.Extension(), ".")
	}

	target, uerr := uc.place(ctx, desc, subdir, extensionFor(desc.OriginalName, detected, canonical))
	if uerr != nil {
		return uc.fail(subdir, "MediaUseCase - UploadDocument - uc.place", uerr)
	}

	uc.observer.ObserveUpload(subdir, outcomeStored)

	return entity.Succeeded(target, detected, fileSize(target.AbsPath), "document uploaded")
}

// Delete removes the file behind relPath. It never fails loudly: missing
// files, bad references and filesystem errors all report false.
func (uc *MediaUseCase) Delete(relPath string) bool {
	if strings.TrimSpace(relPath) == "" {
		return false
	}

	removed, err := uc.store.Remove(relPath)
	if err != nil {
		uc.logger.Warn("media - delete %q failed: %v", relPath, err)
		uc.observer.ObserveDeletion(outcomeFailed)

		return false
	}

	if !removed {
		uc.observer.ObserveDeletion(outcomeMissing)
		return false
	}

	uc.observer.ObserveDeletion(outcomeDeleted)

	return true
}

// DeleteWithThumbnail removes the thumbnail (if any) and then the primary
// file. Only the primary deletion decides the result.
func (uc *MediaUseCase) DeleteWithThumbnail(relPath, thumbRelPath string) bool {
	if thumbRelPath != "" {
		uc.Delete(thumbRelPath)
	}

	return uc.Delete(relPath)
}

// SweepStale clears temp files abandoned by interrupted rewrites.
func (uc *MediaUseCase) SweepStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("MediaUseCase - SweepStale: %w", err)
	}

	n, err := uc.store.SweepStale(olderThan)
	if err != nil {
		return n, fmt.Errorf("MediaUseCase - SweepStale - uc.store.SweepStale: %w", err)
	}

	return n, nil
}

func (uc *MediaUseCase) place(ctx context.Context, desc entity.UploadDescriptor, subdir, ext string) (entity.StorageTarget, *entity.UploadError) {
	started := time.Now()
	defer func() {
		uc.observer.ObserveStage(stageStore, time.Since(started))
	}()

	if err := ctx.Err(); err != nil {
		return entity.StorageTarget{}, &entity.UploadError{Kind: entity.KindStorageFailure, Field: "file", Err: err}
	}

	target, err := uc.store.Resolve(subdir, ext)
	if err != nil {
		return entity.StorageTarget{}, &entity.UploadError{Kind: entity.KindStorageFailure, Field: "file", Err: err}
	}

	err = uc.store.Place(desc.TempPath, target)
	if err != nil {
		return entity.StorageTarget{}, &entity.UploadError{Kind: entity.KindStorageFailure, Field: "file", Err: err}
	}

	return target, nil
}

func (uc *MediaUseCase) fail(subdir, where string, uerr *entity.UploadError) *entity.UploadResult {
	uc.logger.Error(uerr, where)
	uc.observer.ObserveUpload(subdir, outcomeFailed)

	return entity.Failed(uerr)
}

func processingError(err error) *entity.UploadError {
	kind := entity.KindStorageFailure

	switch {
	case errors.Is(err, errs.ErrDecode):
		kind = entity.KindDecodeFailure
	case errors.Is(err, errs.ErrEncode):
		kind = entity.KindEncodeFailure
	}

	return &entity.UploadError{Kind: kind, Field: "file", Err: err}
}

// extensionFor keeps the client's extension (lowercased) when it agrees
// with the sniffed type and falls back to the canonical one otherwise.
func extensionFor(originalName, detected, canonical string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != "" {
		if t, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil && t == detected {
			return strings.TrimPrefix(ext, ".")
		}
	}

	return canonical
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}

	return info.Size()
}

func (o Options) String() string {
	return fmt.Sprintf("max_size=%d max_width=%d thumb=%dx%d", o.MaxSize, o.MaxWidth, o.ThumbWidth, o.ThumbHeight)
}
