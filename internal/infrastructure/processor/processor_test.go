package processor

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/andreyxaxa/Media-Pipeline/internal/infrastructure/codec"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registry = codec.NewRegistry(codec.Options{JPEGQuality: 85, WebPQuality: 85, PNGCompression: 8})

func codecFor(t *testing.T, mime string) codec.Codec {
	t.Helper()

	c, ok := registry.ForMIME(mime)
	require.True(t, ok, mime)

	return c
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	return img
}

func writeJPEG(t *testing.T, dir string, w, h int) string {
	t.Helper()

	p := filepath.Join(dir, "abc_1700000000.jpg")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, jpeg.Encode(f, gradient(w, h), &jpeg.Options{Quality: 90}))

	return p
}

func writePNG(t *testing.T, dir string, img image.Image) string {
	t.Helper()

	p := filepath.Join(dir, "abc_1700000000.png")
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, img))

	return p
}

func dimensions(t *testing.T, p string) (int, int) {
	t.Helper()

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)

	return cfg.Width, cfg.Height
}

func decode(t *testing.T, p string) image.Image {
	t.Helper()

	f, err := os.Open(p)
	require.NoError(t, err)
	defer f.Close()

	img, _, err := image.Decode(f)
	require.NoError(t, err)

	return img
}

func TestFitWidth(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{name: "landscape", w: 3000, h: 2000, max: 1920, wantW: 1920, wantH: 1280},
		{name: "portrait", w: 4000, h: 6000, max: 1920, wantW: 1920, wantH: 2880},
		{name: "height floors", w: 1921, h: 1001, max: 1920, wantW: 1920, wantH: 1000},
		{name: "thin strip keeps one row", w: 5000, h: 1, max: 1920, wantW: 1920, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitWidth(tt.w, tt.h, tt.max)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestFitBox(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{name: "portrait", w: 1000, h: 2000, wantW: 150, wantH: 300},
		{name: "landscape", w: 2000, h: 1000, wantW: 300, wantH: 150},
		{name: "square", w: 500, h: 500, wantW: 300, wantH: 300},
		{name: "small image is upscaled", w: 100, h: 50, wantW: 300, wantH: 150},
		{name: "extreme strip keeps one pixel", w: 3000, h: 1, wantW: 300, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitBox(tt.w, tt.h, 300, 300)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestTranscode(t *testing.T) {
	p := New()
	ctx := context.Background()

	t.Run("wide jpeg is downsized", func(t *testing.T) {
		path := writeJPEG(t, t.TempDir(), 3000, 2000)

		resized, err := p.Transcode(ctx, path, codecFor(t, "image/jpeg"), 1920)
		require.NoError(t, err)
		assert.True(t, resized)

		w, h := dimensions(t, path)
		assert.Equal(t, 1920, w)
		assert.Equal(t, 1280, h)
	})

	t.Run("narrow image is left byte-identical", func(t *testing.T) {
		path := writePNG(t, t.TempDir(), gradient(800, 600))
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		resized, err := p.Transcode(ctx, path, codecFor(t, "image/png"), 1920)
		require.NoError(t, err)
		assert.False(t, resized)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("exact max width is not rewritten", func(t *testing.T) {
		path := writeJPEG(t, t.TempDir(), 1920, 1080)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		resized, err := p.Transcode(ctx, path, codecFor(t, "image/jpeg"), 1920)
		require.NoError(t, err)
		assert.False(t, resized)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("png transparency survives", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 4000, 100))
		for y := 0; y < 100; y++ {
			for x := 2000; x < 4000; x++ {
				src.Set(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
		path := writePNG(t, t.TempDir(), src)

		resized, err := p.Transcode(ctx, path, codecFor(t, "image/png"), 1920)
		require.NoError(t, err)
		require.True(t, resized)

		img := decode(t, path)
		assert.Equal(t, 1920, img.Bounds().Dx())
		assert.Equal(t, 48, img.Bounds().Dy())

		_, _, _, a := img.At(100, 20).RGBA()
		assert.Zero(t, a, "left half must stay transparent")

		r, _, _, a := img.At(1800, 20).RGBA()
		assert.Equal(t, uint32(0xffff), a)
		assert.Equal(t, uint32(0xffff), r)
	})

	t.Run("gif keeps transparent pixels", func(t *testing.T) {
		pal := color.Palette{color.Transparent, color.RGBA{G: 255, A: 255}}
		src := image.NewPaletted(image.Rect(0, 0, 2400, 60), pal)
		for y := 0; y < 60; y++ {
			for x := 1200; x < 2400; x++ {
				src.SetColorIndex(x, y, 1)
			}
		}

		path := filepath.Join(t.TempDir(), "anim_1700000000.gif")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, gif.Encode(f, src, nil))
		require.NoError(t, f.Close())

		resized, err := p.Transcode(ctx, path, codecFor(t, "image/gif"), 1920)
		require.NoError(t, err)
		require.True(t, resized)

		img := decode(t, path)
		assert.Equal(t, 1920, img.Bounds().Dx())

		_, _, _, a := img.At(50, 10).RGBA()
		assert.Zero(t, a)

		_, g, _, a := img.At(1800, 10).RGBA()
		assert.Equal(t, uint32(0xffff), a)
		assert.Greater(t, g, uint32(0x8000))
	})

	t.Run("undecodable file is left as stored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken_1700000000.jpg")
		garbage := []byte("\xff\xd8\xff\xe0 definitely not a complete jpeg")
		require.NoError(t, os.WriteFile(path, garbage, 0o644))

		resized, err := p.Transcode(ctx, path, codecFor(t, "image/jpeg"), 1920)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrDecode)
		assert.False(t, resized)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, garbage, after)
	})

	t.Run("no temp files are left behind", func(t *testing.T) {
		dir := t.TempDir()
		path := writeJPEG(t, dir, 2500, 500)

		_, err := p.Transcode(ctx, path, codecFor(t, "image/jpeg"), 1920)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, filepath.Base(path), entries[0].Name())
	})
}

func TestThumbnail(t *testing.T) {
	p := New()
	ctx := context.Background()

	t.Run("portrait fits the box height", func(t *testing.T) {
		dir := t.TempDir()
		path := writeJPEG(t, dir, 1000, 2000)

		thumb, err := p.Thumbnail(ctx, path, codecFor(t, "image/jpeg"), 300, 300)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "thumb_abc_1700000000.jpg"), thumb)

		w, h := dimensions(t, thumb)
		assert.Equal(t, 150, w)
		assert.Equal(t, 300, h)

		// the original is untouched
		w, h = dimensions(t, path)
		assert.Equal(t, 1000, w)
		assert.Equal(t, 2000, h)
	})

	t.Run("landscape png keeps alpha", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 800, 400))
		for y := 0; y < 400; y++ {
			for x := 400; x < 800; x++ {
				src.Set(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
		path := writePNG(t, t.TempDir(), src)

		thumb, err := p.Thumbnail(ctx, path, codecFor(t, "image/png"), 300, 300)
		require.NoError(t, err)

		img := decode(t, thumb)
		assert.Equal(t, image.Rect(0, 0, 300, 150), img.Bounds())

		_, _, _, a := img.At(20, 75).RGBA()
		assert.Zero(t, a)
	})

	t.Run("decode failure writes no thumbnail", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad_1700000000.png")
		require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

		_, err := p.Thumbnail(ctx, path, codecFor(t, "image/png"), 300, 300)
		assert.ErrorIs(t, err, errs.ErrDecode)

		_, err = os.Stat(filepath.Join(dir, "thumb_bad_1700000000.png"))
		assert.True(t, os.IsNotExist(err))
	})
}
