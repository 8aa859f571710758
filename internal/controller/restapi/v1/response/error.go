package response

import "github.com/andreyxaxa/Media-Pipeline/internal/entity"

type Error struct {
	Error  string               `json:"error" example:"message"`
	Errors []*entity.UploadError `json:"errors,omitempty"`
}
