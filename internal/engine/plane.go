package engine

import (
	"fmt"

	"github.com/tphakala/go-image-resampler/internal/simdops"
)

// Plane is a 3D (x, y, channel) view over caller-owned float samples.
//
// Each axis has an independent origin and extent; coordinates are global,
// so a plane with MinX=100 answers for x in [100, 100+Width). Samples are
// stored planar with x contiguous:
//
//	index = ((c-MinC)*Height + (y-MinY))*Width + (x-MinX)
//
// The engine never allocates a Plane's Data; input planes are read-only and
// output planes are written only inside their declared extents.
type Plane[F simdops.Float] struct {
	Data []F

	MinX, MinY, MinC        int
	Width, Height, Channels int
}

// validate checks that the backing slice covers the declared extents.
func (p *Plane[F]) validate() error {
	if p == nil {
		return fmt.Errorf("nil plane")
	}
	if p.Width < 0 || p.Height < 0 || p.Channels < 0 {
		return fmt.Errorf("negative extent (%dx%dx%d)", p.Width, p.Height, p.Channels)
	}
	if need := p.Width * p.Height * p.Channels; len(p.Data) < need {
		return fmt.Errorf("backing slice too small: have %d samples, need %d", len(p.Data), need)
	}
	return nil
}

// Row returns the contiguous sample row at global row y and channel index c
// (c counted from 0, not from MinC). y must be in range.
func (p *Plane[F]) Row(y, c int) []F {
	base := (c*p.Height + (y - p.MinY)) * p.Width
	return p.Data[base : base+p.Width]
}

// clampX resolves an out-of-range x coordinate by edge repetition.
func (p *Plane[F]) clampX(x int) int {
	if x < p.MinX {
		return p.MinX
	}
	if x >= p.MinX+p.Width {
		return p.MinX + p.Width - 1
	}
	return x
}

// clampY resolves an out-of-range y coordinate by edge repetition.
func (p *Plane[F]) clampY(y int) int {
	if y < p.MinY {
		return p.MinY
	}
	if y >= p.MinY+p.Height {
		return p.MinY + p.Height - 1
	}
	return y
}

// Sample returns the sample at (x, y) in channel index c, with both spatial
// coordinates clamped into range. This is the boundary-handled read path;
// it never copies or mutates the plane.
func (p *Plane[F]) Sample(x, y, c int) F {
	return p.Row(p.clampY(y), c)[p.clampX(x)-p.MinX]
}

// rowWindow returns the samples for global columns [x0, x1) of the
// edge-clamped row y. When the window lies fully inside the plane the
// returned slice aliases the plane directly; otherwise buf is filled with
// edge-replicated samples and returned. buf must have at least x1-x0
// capacity.
func (p *Plane[F]) rowWindow(buf []F, y, x0, x1, c int) []F {
	row := p.Row(p.clampY(y), c)
	lo := x0 - p.MinX
	hi := x1 - p.MinX
	if lo >= 0 && hi <= p.Width {
		return row[lo:hi]
	}

	buf = buf[:x1-x0]
	first := row[0]
	last := row[p.Width-1]
	for i := range buf {
		switch xi := lo + i; {
		case xi < 0:
			buf[i] = first
		case xi >= p.Width:
			buf[i] = last
		default:
			buf[i] = row[xi]
		}
	}
	return buf
}
