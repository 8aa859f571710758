package v1

import (
	"errors"
	"strings"

	"github.com/andreyxaxa/Media-Pipeline/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/gofiber/fiber/v2"
)

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

func rejectedResponse(ctx *fiber.Ctx, code int, problems []*entity.UploadError) error {
	return ctx.Status(code).JSON(response.Error{Error: "upload rejected", Errors: problems})
}

// OversizeUploads answers bodies cut off by the server's size cap on the
// upload routes with the same error list the validator produces for a too
// large file. Everything else goes to next.
func OversizeUploads(maxSize int64) func(next fiber.ErrorHandler) fiber.ErrorHandler {
	return func(next fiber.ErrorHandler) fiber.ErrorHandler {
		return func(ctx *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if !errors.As(err, &fe) || fe.Code != fiber.StatusRequestEntityTooLarge || !isUpload(ctx) {
				return next(ctx, err)
			}

			return rejectedResponse(ctx, fiber.StatusRequestEntityTooLarge, []*entity.UploadError{{
				Kind:  entity.KindSizeExceeded,
				Field: "file",
				Limit: maxSize,
			}})
		}
	}
}

func isUpload(ctx *fiber.Ctx) bool {
	switch ctx.Method() {
	case fiber.MethodPost, fiber.MethodPut:
		return strings.HasPrefix(ctx.Path(), "/v1/assets/")
	}

	return false
}
