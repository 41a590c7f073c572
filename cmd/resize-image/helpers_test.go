package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: 64,
				A: 255,
			})
		}
	}
	return img
}

func TestEncoderForExtension(t *testing.T) {
	tests := []struct {
		ext     string
		wantErr bool
	}{
		{".png", false},
		{".PNG", false},
		{".jpg", false},
		{".jpeg", false},
		{".gif", false},
		{".bmp", false},
		{".tif", false},
		{".tiff", false},
		{".webp", true}, // decode only
		{".svg", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			encode, err := encoderForExtension(tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, encode)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage(16, 12)

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "image"+ext)
			require.NoError(t, encodeImage(path, src))

			got, _, err := decodeImage(path)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds().Dx(), got.Bounds().Dx())
			assert.Equal(t, src.Bounds().Dy(), got.Bounds().Dy())

			// Lossless formats must round-trip exactly.
			for y := range 12 {
				for x := range 16 {
					wr, wg, wb, wa := src.At(x, y).RGBA()
					gr, gg, gb, ga := got.At(x, y).RGBA()
					require.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{gr, gg, gb, ga})
				}
			}
		})
	}
}

func TestDecodeImage_Missing(t *testing.T) {
	_, _, err := decodeImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestDecodeImage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, _, err := decodeImage(path)
	assert.Error(t, err)
}

func TestResizeFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.png")
	outPath := filepath.Join(dir, "out.png")

	f, err := os.Create(inPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage(20, 10)))
	require.NoError(t, f.Close())

	stats, err := resizeFile(inPath, outPath, 0.5, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 20, stats.inputWidth)
	assert.Equal(t, 10, stats.inputHeight)
	assert.Equal(t, 10, stats.outputWidth)
	assert.Equal(t, 5, stats.outputHeight)
	assert.Equal(t, "png", stats.format)
	assert.Equal(t, "cubic", stats.kernel)

	out, _, err := decodeImage(outPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 5), out.Bounds())
}
