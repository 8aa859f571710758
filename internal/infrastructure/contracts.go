package infrastructure

import (
	"context"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/infrastructure/codec"
)

type (
	ImageProcessor interface {
		Transcode(ctx context.Context, path string, c codec.Codec, maxWidth int) (bool, error)
		Thumbnail(ctx context.Context, path string, c codec.Codec, boxW, boxH int) (string, error)
	}

	CodecRegistry interface {
		ForMIME(mime string) (codec.Codec, bool)
	}

	PipelineObserver interface {
		ObserveUpload(subdir, outcome string)
		ObserveStage(stage string, d time.Duration)
		ObserveDeletion(outcome string)
	}
)
