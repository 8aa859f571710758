package codec

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
)

// transparentIndex follows the 216 web-safe colors and marks fully
// transparent pixels.
var transparentIndex = len(palette.WebSafe)

type gifCodec struct{}

func (c *gifCodec) Format() Format    { return GIF }
func (c *gifCodec) MIME() string      { return "image/gif" }
func (c *gifCodec) Extension() string { return "gif" }
func (c *gifCodec) Alpha() bool       { return true }

// Decode returns the first frame, animated GIFs are flattened.
func (c *gifCodec) Decode(r io.Reader) (image.Image, error) {
	img, err := gif.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("gifCodec - Decode - gif.Decode: %w", err)
	}

	return img, nil
}

// Encode quantizes onto the web-safe palette plus one transparent entry.
// imaging's GIF path quantizes without a transparent entry, so the
// paletted image is built here.
func (c *gifCodec) Encode(w io.Writer, img image.Image) error {
	pal := make(color.Palette, 0, transparentIndex+1)
	pal = append(pal, palette.WebSafe...)
	pal = append(pal, color.Transparent)

	b := img.Bounds()
	dst := image.NewPaletted(b, pal)
	opaque := pal[:transparentIndex]

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a < 0x8000 {
				dst.SetColorIndex(x, y, uint8(transparentIndex))
				continue
			}
			dst.SetColorIndex(x, y, uint8(opaque.Index(px)))
		}
	}

	err := gif.Encode(w, dst, &gif.Options{NumColors: len(pal)})
	if err != nil {
		return fmt.Errorf("gifCodec - Encode - gif.Encode: %w", err)
	}

	return nil
}
