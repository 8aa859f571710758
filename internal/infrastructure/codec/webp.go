package codec

import (
	"fmt"
	"image"
	"io"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	xwebp "golang.org/x/image/webp"
)

type webpCodec struct {
	quality int
}

func (c *webpCodec) Format() Format    { return WebP }
func (c *webpCodec) MIME() string      { return "image/webp" }
func (c *webpCodec) Extension() string { return "webp" }
func (c *webpCodec) Alpha() bool       { return true }

func (c *webpCodec) Decode(r io.Reader) (image.Image, error) {
	img, err := xwebp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("webpCodec - Decode - webp.Decode: %w", err)
	}

	return img, nil
}

func (c *webpCodec) Encode(w io.Writer, img image.Image) error {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(c.quality))
	if err != nil {
		return fmt.Errorf("webpCodec - Encode - encoder.NewLossyEncoderOptions: %w", err)
	}

	err = webp.Encode(w, img, options)
	if err != nil {
		return fmt.Errorf("webpCodec - Encode - webp.Encode: %w", err)
	}

	return nil
}
