package response

import (
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
)

type Asset struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	Kind          string  `json:"kind"`
	Path          string  `json:"path"`
	URL           string  `json:"url"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
	ThumbnailURL  *string `json:"thumbnail_url,omitempty"`
	Filename      string  `json:"filename"`
	OriginalName  string  `json:"original_name"`
	MimeType      string  `json:"mime_type"`
	Size          int64   `json:"size"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type AssetList struct {
	Items  []Asset `json:"items"`
	Limit  uint64  `json:"limit"`
	Offset uint64  `json:"offset"`
}

func NewAsset(a *entity.Asset) Asset {
	resp := Asset{
		ID:            a.ID.String(),
		Category:      a.Category,
		Kind:          string(a.Kind),
		Path:          a.Path,
		URL:           "/" + a.Path,
		ThumbnailPath: a.ThumbnailPath,
		Filename:      a.Filename,
		OriginalName:  a.OriginalName,
		MimeType:      a.MimeType,
		Size:          a.Size,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}

	if a.ThumbnailPath != nil {
		u := "/" + *a.ThumbnailPath
		resp.ThumbnailURL = &u
	}

	return resp
}
