package codec

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"
)

type jpegCodec struct {
	quality int
}

func (c *jpegCodec) Format() Format    { return JPEG }
func (c *jpegCodec) MIME() string      { return "image/jpeg" }
func (c *jpegCodec) Extension() string { return "jpg" }
func (c *jpegCodec) Alpha() bool       { return false }

func (c *jpegCodec) Decode(r io.Reader) (image.Image, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("jpegCodec - Decode - jpeg.Decode: %w", err)
	}

	return img, nil
}

func (c *jpegCodec) Encode(w io.Writer, img image.Image) error {
	err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(c.quality))
	if err != nil {
		return fmt.Errorf("jpegCodec - Encode - imaging.Encode: %w", err)
	}

	return nil
}
