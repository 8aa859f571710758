package v1

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	//go:embed web/index.html
	webFiles embed.FS

	uploadPage = template.Must(template.New("index.html").Funcs(template.FuncMap{
		"join": strings.Join,
		"mib":  func(n int64) float64 { return float64(n) / (1 << 20) },
	}).ParseFS(webFiles, "web/index.html"))
)

// Limits are shown on the upload form so a user sees them before sending.
type Limits struct {
	MaxSize       int64
	MaxWidth      int
	ImageTypes    []string
	DocumentTypes []string
}

func (r *V1) showUI(ctx *fiber.Ctx) error {
	var page bytes.Buffer

	err := uploadPage.Execute(&page, r.limits)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - showUI")

		return errorResponse(ctx, http.StatusInternalServerError, "problems with load UI")
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return ctx.Send(page.Bytes())
}
