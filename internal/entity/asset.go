package entity

import (
	"time"

	"github.com/google/uuid"
)

// Asset is a ledger row pointing at files produced by the pipeline.
type Asset struct {
	ID uuid.UUID `json:"id"`

	Category string   `json:"category"`
	Kind     Category `json:"kind"`

	Path          string  `json:"path"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
	Filename      string  `json:"filename"`

	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadOptions are the per-request knobs of an asset upload.
type UploadOptions struct {
	Kind            Category
	CreateThumbnail bool
	MaxWidth        int
}
