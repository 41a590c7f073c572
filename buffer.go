package resizer

import (
	"fmt"

	"github.com/tphakala/go-image-resampler/internal/engine"
	"github.com/tphakala/go-image-resampler/internal/simdops"
)

// Buffer is a 3D pixel buffer with axes (x, y, channel). Each axis has an
// independent origin and extent, so buffers can describe crops of a larger
// coordinate space; most callers leave the origins at zero.
//
// Samples are normalized intensities in [0, 1], stored planar with x
// contiguous:
//
//	index = ((c-MinC)*Height + (y-MinY))*Width + (x-MinX)
//
// The public API works with Buffer[float32]; a float64 path is available
// through [NewFloat64].
type Buffer[F simdops.Float] struct {
	// Data is the backing sample slice. It must hold at least
	// Width*Height*Channels samples.
	Data []F

	// MinX, MinY and MinC are the per-axis origins.
	MinX, MinY, MinC int

	// Width, Height and Channels are the per-axis extents.
	Width, Height, Channels int
}

// NewBuffer allocates a zero-filled buffer with origins at zero.
func NewBuffer[F simdops.Float](width, height, channels int) *Buffer[F] {
	return &Buffer[F]{
		Data:     make([]F, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

// NewBufferAt allocates a zero-filled buffer with the given origins.
func NewBufferAt[F simdops.Float](minX, minY, minC, width, height, channels int) *Buffer[F] {
	b := NewBuffer[F](width, height, channels)
	b.MinX, b.MinY, b.MinC = minX, minY, minC
	return b
}

// At returns the sample at global coordinates (x, y, c). Coordinates must be
// inside the buffer's extents.
func (b *Buffer[F]) At(x, y, c int) F {
	return b.Data[b.index(x, y, c)]
}

// Set stores a sample at global coordinates (x, y, c).
func (b *Buffer[F]) Set(x, y, c int, v F) {
	b.Data[b.index(x, y, c)] = v
}

func (b *Buffer[F]) index(x, y, c int) int {
	return (((c-b.MinC)*b.Height+(y-b.MinY))*b.Width + (x - b.MinX))
}

// Row returns the contiguous sample row at global row y in channel c.
func (b *Buffer[F]) Row(y, c int) []F {
	base := b.index(b.MinX, y, c)
	return b.Data[base : base+b.Width]
}

// validate checks shape invariants before handing the buffer to the engine.
func (b *Buffer[F]) validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrBufferMismatch)
	}
	if b.Width < 0 || b.Height < 0 || b.Channels < 0 {
		return fmt.Errorf("%w: negative extent (%dx%dx%d)", ErrBufferMismatch, b.Width, b.Height, b.Channels)
	}
	if need := b.Width * b.Height * b.Channels; len(b.Data) < need {
		return fmt.Errorf("%w: backing slice holds %d samples, extents need %d", ErrBufferMismatch, len(b.Data), need)
	}
	return nil
}

// plane adapts the buffer to the engine's plane view. Both share the same
// layout, so this is a header conversion with no copying.
func (b *Buffer[F]) plane() *engine.Plane[F] {
	return &engine.Plane[F]{
		Data: b.Data,
		MinX: b.MinX, MinY: b.MinY, MinC: b.MinC,
		Width: b.Width, Height: b.Height, Channels: b.Channels,
	}
}
