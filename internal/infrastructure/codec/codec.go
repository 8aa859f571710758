// Package codec holds one decoder/encoder pair per supported image format.
// A codec is chosen once from the sniffed MIME type and reused by every
// processing stage of an upload.
package codec

import (
	"image"
	"image/png"
	"io"
)

type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	GIF  Format = "gif"
	WebP Format = "webp"
)

type Codec interface {
	Format() Format
	MIME() string
	// Extension is the canonical lowercase extension without the dot.
	Extension() string
	// Alpha reports whether the format keeps an alpha channel, in which case
	// resized canvases start fully transparent and are drawn without blending.
	Alpha() bool
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
}

type Options struct {
	JPEGQuality    int
	WebPQuality    int
	PNGCompression int
}

type Registry struct {
	byMIME map[string]Codec
}

func NewRegistry(opts Options) *Registry {
	codecs := []Codec{
		&jpegCodec{quality: opts.JPEGQuality},
		&pngCodec{level: pngLevel(opts.PNGCompression)},
		&gifCodec{},
		&webpCodec{quality: opts.WebPQuality},
	}

	r := &Registry{byMIME: make(map[string]Codec, len(codecs))}
	for _, c := range codecs {
		r.byMIME[c.MIME()] = c
	}

	return r
}

func (r *Registry) ForMIME(mime string) (Codec, bool) {
	c, ok := r.byMIME[mime]

	return c, ok
}

// pngLevel maps a 0..9 zlib style level onto the levels image/png exposes.
func pngLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
