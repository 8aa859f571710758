package processor

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/andreyxaxa/Media-Pipeline/internal/infrastructure/codec"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"golang.org/x/image/draw"
)

const ThumbnailPrefix = "thumb_"

type ImageProcessor struct{}

func New() *ImageProcessor {
	return &ImageProcessor{}
}

// Transcode downsizes the image at path in place when it is wider than
// maxWidth. Narrower images are not rewritten. On any failure the file keeps
// the bytes it had before the call.
func (p *ImageProcessor) Transcode(ctx context.Context, path string, c codec.Codec, maxWidth int) (bool, error) {
	img, err := decodeFile(path, c)
	if err != nil {
		return false, fmt.Errorf("ImageProcessor - Transcode - decodeFile: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return false, nil
	}

	w, h := FitWidth(b.Dx(), b.Dy(), maxWidth)

	err = encodeFile(path, scale(img, w, h, c.Alpha()), c)
	if err != nil {
		return false, fmt.Errorf("ImageProcessor - Transcode - encodeFile: %w", err)
	}

	return true, nil
}

// Thumbnail writes a preview fitted into boxW x boxH next to the source,
// named with ThumbnailPrefix. It returns the absolute thumbnail path.
func (p *ImageProcessor) Thumbnail(ctx context.Context, path string, c codec.Codec, boxW, boxH int) (string, error) {
	img, err := decodeFile(path, c)
	if err != nil {
		return "", fmt.Errorf("ImageProcessor - Thumbnail - decodeFile: %w", err)
	}

	b := img.Bounds()
	w, h := FitBox(b.Dx(), b.Dy(), boxW, boxH)

	thumbPath := filepath.Join(filepath.Dir(path), ThumbnailPrefix+filepath.Base(path))

	err = encodeFile(thumbPath, scale(img, w, h, c.Alpha()), c)
	if err != nil {
		return "", fmt.Errorf("ImageProcessor - Thumbnail - encodeFile: %w", err)
	}

	return thumbPath, nil
}

// FitWidth keeps the aspect ratio, flooring the height.
func FitWidth(width, height, maxWidth int) (int, int) {
	newHeight := height * maxWidth / width
	if newHeight < 1 {
		newHeight = 1
	}

	return maxWidth, newHeight
}

// FitBox lets the longer side fill the box. Square images take the
// portrait branch.
func FitBox(width, height, boxW, boxH int) (int, int) {
	aspect := float64(width) / float64(height)

	var newW, newH int
	if width > height {
		newW = boxW
		newH = int(float64(boxW) / aspect)
	} else {
		newH = boxH
		newW = int(float64(boxH) * aspect)
	}

	return max(newW, 1), max(newH, 1)
}

func scale(src image.Image, w, h int, alpha bool) image.Image {
	rect := image.Rect(0, 0, w, h)

	var canvas draw.Image
	if alpha {
		nrgba := image.NewNRGBA(rect)
		draw.Draw(nrgba, rect, image.Transparent, image.Point{}, draw.Src)
		canvas = nrgba
	} else {
		canvas = image.NewRGBA(rect)
	}

	draw.CatmullRom.Scale(canvas, rect, src, src.Bounds(), draw.Src, nil)

	return canvas
}

func decodeFile(path string, c codec.Codec) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decodeFile - os.Open: %w: %w", errs.ErrStorage, err)
	}
	defer f.Close()

	img, err := c.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decodeFile - %s: %w: %w", c.Format(), errs.ErrDecode, err)
	}

	return img, nil
}

// encodeFile writes to a sibling temp file and renames it over path, so a
// failed encode never leaves a truncated file behind.
func encodeFile(path string, img image.Image, c codec.Codec) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("encodeFile - os.CreateTemp: %w: %w", errs.ErrStorage, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)

	err = c.Encode(w, img)
	if err != nil {
		return fmt.Errorf("encodeFile - %s: %w: %w", c.Format(), errs.ErrEncode, err)
	}

	err = w.Flush()
	if err != nil {
		return fmt.Errorf("encodeFile - w.Flush: %w: %w", errs.ErrStorage, err)
	}

	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("encodeFile - tmp.Close: %w: %w", errs.ErrStorage, err)
	}

	err = os.Chmod(tmp.Name(), 0o644)
	if err != nil {
		return fmt.Errorf("encodeFile - os.Chmod: %w: %w", errs.ErrStorage, err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("encodeFile - os.Rename: %w: %w", errs.ErrStorage, err)
	}

	return nil
}
