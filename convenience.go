package resizer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/tphakala/go-image-resampler/internal/engine"
)

// ScaledExtent returns the output extent for an input extent resized by
// scale, rounding to nearest and never collapsing a non-empty axis to zero.
func ScaledExtent(extent int, scale float64) int {
	if extent <= 0 {
		return 0
	}
	out := int(math.Round(float64(extent) * scale))
	if out < 1 {
		return 1
	}
	return out
}

// Resize is a convenience function for one-shot resizing. It allocates the
// output buffer at the rounded scaled extents, infers the scale direction
// from the factor, and resizes with parallel workers enabled.
func Resize(src *Buffer[float32], scale float64, interp InterpolationType) (*Buffer[float32], error) {
	r, err := New(&Config{
		ScaleFactor:    scale,
		Interpolation:  interp,
		Upsample:       scale > 1,
		EnableParallel: true,
	})
	if err != nil {
		return nil, err
	}

	dst := NewBuffer[float32](ScaledExtent(src.Width, scale), ScaledExtent(src.Height, scale), src.Channels)
	dst.MinC = src.MinC
	if err := r.Resize(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// ResizeImage is a convenience function for one-shot resizing of a standard
// library image. It converts through FromImage/ToImage and returns a 16-bit
// RGBA image at the scaled size.
func ResizeImage(img image.Image, scale float64, interp InterpolationType) (image.Image, error) {
	dst, err := Resize(FromImage(img), scale, interp)
	if err != nil {
		return nil, err
	}
	return ToImage(dst)
}

// FromImage converts an image.Image into a 4-channel (RGBA) buffer with
// samples normalized to [0, 1]. Color values are the alpha-premultiplied
// values the image exposes, so resampling never bleeds color out of
// transparent regions.
func FromImage(img image.Image) *Buffer[float32] {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := NewBuffer[float32](w, h, rgbaChannels)

	for y := range h {
		rowR := b.Row(y, 0)
		rowG := b.Row(y, 1)
		rowB := b.Row(y, 2)
		rowA := b.Row(y, 3)
		for x := range w {
			cr, cg, cb, ca := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rowR[x] = float32(cr) / sampleScale16
			rowG[x] = float32(cg) / sampleScale16
			rowB[x] = float32(cb) / sampleScale16
			rowA[x] = float32(ca) / sampleScale16
		}
	}
	return b
}

// ToImage converts a buffer back into a 16-bit image. Supported channel
// layouts: 1 (grayscale), 3 (RGB, opaque) and 4 (premultiplied RGBA).
// Samples are assumed to be in [0, 1]; the resizer guarantees this for its
// own output.
func ToImage(b *Buffer[float32]) (image.Image, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	switch b.Channels {
	case grayChannels:
		img := image.NewGray16(image.Rect(0, 0, b.Width, b.Height))
		for y := range b.Height {
			row := b.Row(b.MinY+y, b.MinC)
			for x, v := range row {
				img.SetGray16(x, y, color.Gray16{Y: sample16(v)})
			}
		}
		return img, nil

	case 3, rgbaChannels:
		img := image.NewRGBA64(image.Rect(0, 0, b.Width, b.Height))
		for y := range b.Height {
			rowR := b.Row(b.MinY+y, b.MinC)
			rowG := b.Row(b.MinY+y, b.MinC+1)
			rowB := b.Row(b.MinY+y, b.MinC+2)
			for x := range b.Width {
				c := color.RGBA64{
					R: sample16(rowR[x]),
					G: sample16(rowG[x]),
					B: sample16(rowB[x]),
					A: math.MaxUint16,
				}
				if b.Channels == rgbaChannels {
					c.A = sample16(b.Row(b.MinY+y, b.MinC+3)[x])
				}
				img.SetRGBA64(x, y, c)
			}
		}
		return img, nil

	default:
		return nil, fmt.Errorf("%w: cannot encode %d-channel buffer as an image", ErrUnsupported, b.Channels)
	}
}

// sample16 maps a normalized sample to a 16-bit color value.
func sample16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return math.MaxUint16
	}
	return uint16(v*sampleScale16 + 0.5)
}

// =============================================================================
// Float64 API
// =============================================================================
//
// The following types and functions provide a float64 resizing path. The
// float32 API is the right choice for image work: half the memory bandwidth
// and twice the SIMD throughput, with precision far beyond 16-bit color.
// Use float64 when the buffers carry scientific data where accumulated
// rounding matters more than speed.

// Float64Resizer resamples float64 buffers. It wraps the same engine as the
// float32 path with wider accumulation throughout.
type Float64Resizer struct {
	config Config
	engine *engine.Engine[float64]
}

// NewFloat64 creates a resizer operating on Buffer[float64].
func NewFloat64(config *Config) (*Float64Resizer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	eng, err := newEngine[float64](config)
	if err != nil {
		return nil, err
	}
	return &Float64Resizer{config: *config, engine: eng}, nil
}

// Resize fills dst by resampling src.
func (r *Float64Resizer) Resize(dst, src *Buffer[float64]) error {
	if err := src.validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := dst.validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if dst.Channels != src.Channels {
		return fmt.Errorf("%w: channel extents differ (input %d, output %d)", ErrBufferMismatch, src.Channels, dst.Channels)
	}
	return r.engine.Resize(dst.plane(), src.plane())
}

// ScaleFactor returns the configured scale factor.
func (r *Float64Resizer) ScaleFactor() float64 {
	return r.config.ScaleFactor
}

// TapCount returns the per-axis filter tap count.
func (r *Float64Resizer) TapCount() int {
	return r.engine.TapCount()
}
