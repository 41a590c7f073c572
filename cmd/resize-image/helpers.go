package main

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	// WebP is decode-only; registering it here lets image.Decode accept it.
	_ "golang.org/x/image/webp"
)

// decodeImage opens and decodes an image file, returning the image and the
// detected format name.
func decodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, format, nil
}

// encodeImage writes an image in the format implied by the output path's
// extension.
func encodeImage(path string, img image.Image) (err error) {
	encode, err := encoderForExtension(filepath.Ext(path))
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

type encodeFunc func(w io.Writer, img image.Image) error

// encoderForExtension maps an output file extension to its encoder.
func encoderForExtension(ext string) (encodeFunc, error) {
	switch strings.ToLower(ext) {
	case ".png":
		return func(w io.Writer, img image.Image) error {
			return png.Encode(w, img)
		}, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
		}, nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".bmp":
		return func(w io.Writer, img image.Image) error {
			return bmp.Encode(w, img)
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	case ".webp":
		return nil, fmt.Errorf("webp output is not supported (decode only)")
	default:
		return nil, fmt.Errorf("unsupported output format %q", ext)
	}
}
