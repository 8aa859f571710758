package media

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}

	return img
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h), nil))

	return buf.Bytes()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h)))

	return buf.Bytes()
}

func gifBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, solid(w, h), nil))

	return buf.Bytes()
}

// apngBytes is a still PNG with an acTL chunk after IHDR, which is how
// animated PNGs announce themselves. Decoders without APNG support read the
// default image and skip the chunk.
func apngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	still := pngBytes(t, w, h)
	const ihdrEnd = 8 + 4 + 4 + 13 + 4

	body := make([]byte, 8)
	binary.BigEndian.PutUint32(body[0:4], 1) // frames
	binary.BigEndian.PutUint32(body[4:8], 0) // plays, 0 loops forever

	chunk := make([]byte, 0, 4+4+len(body)+4)
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(body)))
	chunk = append(chunk, "acTL"...)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(still)+len(chunk))
	out = append(out, still[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, still[ihdrEnd:]...)

	return out
}

// webpFile is a real 150x100 lossy WebP.
func webpFile(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", "narrow.webp"))
	require.NoError(t, err)

	return data
}

// webpHeader is enough for content sniffing, not for decoding.
func webpHeader() []byte {
	return []byte("RIFF\x24\x00\x00\x00WEBPVP8 \x18\x00\x00\x00\x30\x01\x00\x9d\x01\x2a\x01\x00\x01\x00")
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")
}

// incoming writes data to a fresh temp file the way the transport would.
func incoming(t *testing.T, name string, data []byte) entity.UploadDescriptor {
	t.Helper()

	p := filepath.Join(t.TempDir(), "upload-tmp")
	require.NoError(t, os.WriteFile(p, data, 0o600))

	return entity.UploadDescriptor{
		TempPath:     p,
		OriginalName: name,
		Size:         int64(len(data)),
		Status:       entity.TransportOK,
	}
}

func kinds(problems []*entity.UploadError) []entity.ErrorKind {
	out := make([]entity.ErrorKind, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Kind)
	}

	return out
}
