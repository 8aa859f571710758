package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryForMIME(t *testing.T) {
	r := NewRegistry(Options{JPEGQuality: 85, WebPQuality: 85, PNGCompression: 8})

	tests := []struct {
		mime      string
		format    Format
		extension string
		alpha     bool
	}{
		{mime: "image/jpeg", format: JPEG, extension: "jpg", alpha: false},
		{mime: "image/png", format: PNG, extension: "png", alpha: true},
		{mime: "image/gif", format: GIF, extension: "gif", alpha: true},
		{mime: "image/webp", format: WebP, extension: "webp", alpha: true},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			c, ok := r.ForMIME(tt.mime)
			require.True(t, ok)
			assert.Equal(t, tt.format, c.Format())
			assert.Equal(t, tt.mime, c.MIME())
			assert.Equal(t, tt.extension, c.Extension())
			assert.Equal(t, tt.alpha, c.Alpha())
		})
	}

	t.Run("unknown type", func(t *testing.T) {
		_, ok := r.ForMIME("application/pdf")
		assert.False(t, ok)
	})
}

func TestPNGLevel(t *testing.T) {
	assert.Equal(t, png.NoCompression, pngLevel(0))
	assert.Equal(t, png.BestSpeed, pngLevel(1))
	assert.Equal(t, png.BestSpeed, pngLevel(3))
	assert.Equal(t, png.DefaultCompression, pngLevel(6))
	assert.Equal(t, png.BestCompression, pngLevel(8))
	assert.Equal(t, png.BestCompression, pngLevel(9))
}

func TestJPEGRoundTrip(t *testing.T) {
	c := &jpegCodec{quality: 85}

	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	for i := range src.Pix {
		src.Pix[i] = 200
	}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, src))

	img, err := c.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())
}

func TestPNGEncodeKeepsAlpha(t *testing.T) {
	c := &pngCodec{level: pngLevel(8)}

	src := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	src.Set(0, 0, color.NRGBA{A: 0})
	src.Set(3, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, src))

	img, err := c.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{A: 0}, color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 128}, color.NRGBAModel.Convert(img.At(3, 0)))
}

func TestGIFEncodeTransparency(t *testing.T) {
	c := &gifCodec{}

	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			src.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf, src))

	decoded, err := gif.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	_, _, _, a := decoded.At(1, 1).RGBA()
	assert.Zero(t, a)

	r, _, _, a := decoded.At(8, 8).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Equal(t, uint32(0xffff), r)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	r := NewRegistry(Options{JPEGQuality: 85, WebPQuality: 85, PNGCompression: 8})

	for _, mime := range []string{"image/jpeg", "image/png", "image/gif", "image/webp"} {
		t.Run(mime, func(t *testing.T) {
			c, ok := r.ForMIME(mime)
			require.True(t, ok)

			_, err := c.Decode(bytes.NewReader([]byte("this is plain text")))
			assert.Error(t, err)
		})
	}
}
