package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/andreyxaxa/Media-Pipeline/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Media-Pipeline/internal/controller/restapi/v1/validate"
	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// @Summary  	Upload asset
// @Description Validates, stores and (for images) recompresses a file, then records it in the ledger
// @Tags 		assets
// @Accept 		mpfd
// @Produce 	json
// @Param 		category  path     string true  "Storage category (news, events, gallery, ...)"
// @Param 		file 	  formData file   true  "Image (jpeg, png, gif, webp) or document (pdf)"
// @Param 		kind 	  formData string false "Kind" Enums(image, document) default(image)
// @Param 		thumbnail formData bool   false "Create a thumbnail (images only)"
// @Param 		max_width formData int    false "Downsize images wider than this"
// @Success 	201 {object} response.Asset
// @Failure 	400 {object} response.Error "Wrong parameters"
// @Failure 	422 {object} response.Error "Upload rejected"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{category} [post]
func (r *V1) uploadAsset(ctx *fiber.Ctx) error {
	category := ctx.Params("category")
	if !validate.CategoryPattern.MatchString(category) {
		return errorResponse(ctx, http.StatusBadRequest, "invalid category")
	}

	opts, err := parseUploadOptions(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	desc, cleanup := r.receive(ctx)
	defer cleanup()

	asset, err := r.assets.Upload(ctx.UserContext(), desc, category, opts)
	if err != nil {
		return r.uploadFailure(ctx, err, "restapi - v1 - uploadAsset")
	}

	return ctx.Status(http.StatusCreated).JSON(response.NewAsset(asset))
}

// @Summary  	Replace asset
// @Description Uploads a new file for an existing asset and removes the previous files
// @Tags 		assets
// @Accept 		mpfd
// @Produce 	json
// @Param 		id 	      path     string true  "Asset ID(uuid)"
// @Param 		file 	  formData file   true  "Replacement file"
// @Param 		kind 	  formData string false "Kind" Enums(image, document) default(image)
// @Param 		thumbnail formData bool   false "Create a thumbnail (images only)"
// @Param 		max_width formData int    false "Downsize images wider than this"
// @Success 	200 {object} response.Asset
// @Failure 	400 {object} response.Error "Wrong parameters"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	422 {object} response.Error "Upload rejected"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id} [put]
func (r *V1) replaceAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	opts, err := parseUploadOptions(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	}

	desc, cleanup := r.receive(ctx)
	defer cleanup()

	asset, err := r.assets.Replace(ctx.UserContext(), id, desc, opts)
	if err != nil {
		return r.uploadFailure(ctx, err, "restapi - v1 - replaceAsset")
	}

	return ctx.Status(http.StatusOK).JSON(response.NewAsset(asset))
}

// @Summary 	Get asset
// @Tags 		assets
// @Produce 	json
// @Param 		id path string true "Asset ID(uuid)"
// @Success 	200 {object} response.Asset
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id} [get]
func (r *V1) getAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	asset, err := r.assets.Get(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - getAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.Status(http.StatusOK).JSON(response.NewAsset(asset))
}

// @Summary 	List assets
// @Tags 		assets
// @Produce 	json
// @Param 		category query string false "Filter by category"
// @Param 		limit 	 query int 	  false "Page size (1..100)" default(20)
// @Param 		offset 	 query int 	  false "Offset" default(0)
// @Success 	200 {object} response.AssetList
// @Failure 	400 {object} response.Error "Wrong parameters"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets [get]
func (r *V1) listAssets(ctx *fiber.Ctx) error {
	category := ctx.Query("category")
	if category != "" && !validate.CategoryPattern.MatchString(category) {
		return errorResponse(ctx, http.StatusBadRequest, "invalid category")
	}

	limit := validate.DefaultListLimit
	if s := ctx.Query("limit"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 || n > validate.MaxListLimit {
			return errorResponse(ctx, http.StatusBadRequest,
				fmt.Sprintf("limit must be between 1 and %d", validate.MaxListLimit))
		}
		limit = n
	}

	var offset uint64
	if s := ctx.Query("offset"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "offset must be a non-negative number")
		}
		offset = n
	}

	assets, err := r.assets.List(ctx.UserContext(), category, limit, offset)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - listAssets")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	resp := response.AssetList{
		Items:  make([]response.Asset, 0, len(assets)),
		Limit:  limit,
		Offset: offset,
	}
	for _, a := range assets {
		resp.Items = append(resp.Items, response.NewAsset(a))
	}

	return ctx.Status(http.StatusOK).JSON(resp)
}

// @Summary 	Delete asset
// @Description Deletes the ledger record, then the stored file and its thumbnail
// @Tags 		assets
// @Param		id 	path	 string true "Asset ID(uuid)"
// @Success		204 "Deleted"
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Asset not found"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/assets/{id} [delete]
func (r *V1) deleteAsset(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	err = r.assets.Delete(ctx.UserContext(), id)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return errorResponse(ctx, http.StatusNotFound, "asset not found")
		}
		r.logger.Error(err, "restapi - v1 - deleteAsset")

		return errorResponse(ctx, http.StatusInternalServerError, "storage problems")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

func (r *V1) uploadFailure(ctx *fiber.Ctx, err error, where string) error {
	var pe *entity.PipelineError

	switch {
	case errors.As(err, &pe) && pe.Rejected():
		return rejectedResponse(ctx, http.StatusUnprocessableEntity, pe.Errors)
	case errors.Is(err, errs.ErrRecordNotFound):
		return errorResponse(ctx, http.StatusNotFound, "asset not found")
	}

	r.logger.Error(err, where)

	return errorResponse(ctx, http.StatusInternalServerError, "upload failed")
}

// receive copies the multipart file into a temp file and describes it. A
// missing or unreadable part is reported through the descriptor status so
// the validator produces the error.
func (r *V1) receive(ctx *fiber.Ctx) (entity.UploadDescriptor, func()) {
	noop := func() {}

	file, err := ctx.FormFile("file")
	if err != nil {
		return entity.UploadDescriptor{Status: entity.TransportNoFile}, noop
	}

	desc := entity.UploadDescriptor{
		OriginalName: file.Filename,
		Size:         file.Size,
		Status:       entity.TransportOK,
	}

	src, err := file.Open()
	if err != nil {
		r.logger.Error(err, "restapi - v1 - receive - file.Open")
		desc.Status = entity.TransportPartial

		return desc, noop
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		r.logger.Error(err, "restapi - v1 - receive - os.CreateTemp")
		desc.Status = entity.TransportNoTmpDir

		return desc, noop
	}

	cleanup := func() {
		// after a successful upload the file has been moved away already
		_ = os.Remove(tmp.Name())
	}

	_, err = io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		r.logger.Error(err, "restapi - v1 - receive - io.Copy")
		desc.Status = entity.TransportCantWrite

		return desc, cleanup
	}

	desc.TempPath = tmp.Name()

	return desc, cleanup
}

func parseUploadOptions(ctx *fiber.Ctx) (entity.UploadOptions, error) {
	opts := entity.UploadOptions{Kind: entity.CategoryImage}

	if kind := strings.ToLower(ctx.FormValue("kind")); kind != "" {
		if !validate.AllowedKinds[kind] {
			return opts, errors.New("invalid kind. Allowed: image, document")
		}
		opts.Kind = entity.Category(kind)
	}

	if s := ctx.FormValue("thumbnail"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return opts, errors.New("thumbnail must be a boolean")
		}
		opts.CreateThumbnail = b
	}

	if s := ctx.FormValue("max_width"); s != "" {
		w, err := strconv.Atoi(s)
		if err != nil {
			return opts, errors.New("max_width must be a number")
		}
		if w < validate.MinMaxWidth || w > validate.MaxMaxWidth {
			return opts, fmt.Errorf("max_width must be between %d and %d", validate.MinMaxWidth, validate.MaxMaxWidth)
		}
		opts.MaxWidth = w
	}

	return opts, nil
}
