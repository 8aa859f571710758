package codec

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

type pngCodec struct {
	level png.CompressionLevel
}

func (c *pngCodec) Format() Format    { return PNG }
func (c *pngCodec) MIME() string      { return "image/png" }
func (c *pngCodec) Extension() string { return "png" }
func (c *pngCodec) Alpha() bool       { return true }

func (c *pngCodec) Decode(r io.Reader) (image.Image, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("pngCodec - Decode - png.Decode: %w", err)
	}

	return img, nil
}

func (c *pngCodec) Encode(w io.Writer, img image.Image) error {
	err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(c.level))
	if err != nil {
		return fmt.Errorf("pngCodec - Encode - imaging.Encode: %w", err)
	}

	return nil
}
