// Package engine implements separable 2D image resampling.
//
// The resize is expressed as two 1D convolution passes with per-coordinate
// weight tables. Pass order depends on direction: when downsampling the
// vertical pass runs first and the horizontal pass last, when upsampling the
// horizontal pass runs first. The orders are mathematically equivalent (the
// filter is separable); the choice only keeps the highest-volume final pass
// operating on contiguous rows.
//
// Work is partitioned into rectangular output tiles. Tiles are distributed
// across workers along y, each tile computes its intermediate one-axis
// resampled plane in private scratch sized to the tap window the second
// pass needs, and the inner per-tap accumulation runs on contiguous rows so
// it can use SIMD dot products.
package engine

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/tphakala/go-image-resampler/internal/kernel"
	"github.com/tphakala/go-image-resampler/internal/simdops"
)

const (
	// Default output tile extents. The final pass of a downscale streams
	// whole rows, so flat wide tiles keep its working set in L1; an upscale
	// amortizes its horizontal pre-pass over taller tiles. Widths stay a
	// multiple of the widest SIMD lane count (16 x float32).
	downscaleTileWidth  = 64
	downscaleTileHeight = 8
	upscaleTileWidth    = 64
	upscaleTileHeight   = 32

	// Loop unrolling for the scalar row-accumulation fallback.
	loopUnrollFactor = 4
)

// Config holds the resolved resize parameters.
type Config struct {
	// ScaleFactor is output size over input size, uniform for both axes.
	ScaleFactor float64

	// Kernel selects the interpolation kernel.
	Kernel kernel.Kind

	// Upsample selects the upsampling execution plan: native-width kernel
	// and horizontal-first pass order. When false the kernel widens by the
	// scale factor to low-pass filter and the vertical pass runs first.
	Upsample bool

	// Parallel enables distributing tile rows across workers.
	Parallel bool

	// Workers is the worker count when Parallel is set; 0 means GOMAXPROCS.
	Workers int

	// TileWidth and TileHeight override the default tile extents; 0 keeps
	// the defaults. Tiling affects throughput only, never results.
	TileWidth, TileHeight int
}

// Engine resamples planes at a fixed scale factor and kernel.
//
// Type parameter F controls the sample precision. An Engine is stateless
// between calls and safe for concurrent use: weight tables and scratch are
// scoped to each Resize call.
type Engine[F simdops.Float] struct {
	cfg  Config
	info kernel.Info
	ops  *simdops.Ops[F]
}

// New creates an engine for the given configuration.
func New[F simdops.Float](cfg Config) (*Engine[F], error) {
	if cfg.ScaleFactor <= 0 || math.IsNaN(cfg.ScaleFactor) || math.IsInf(cfg.ScaleFactor, 0) {
		return nil, fmt.Errorf("scale factor must be positive and finite: %v", cfg.ScaleFactor)
	}
	info, err := kernel.ByKind(cfg.Kernel)
	if err != nil {
		return nil, err
	}
	if cfg.TileWidth == 0 {
		if cfg.Upsample {
			cfg.TileWidth = upscaleTileWidth
		} else {
			cfg.TileWidth = downscaleTileWidth
		}
	}
	if cfg.TileHeight == 0 {
		if cfg.Upsample {
			cfg.TileHeight = upscaleTileHeight
		} else {
			cfg.TileHeight = downscaleTileHeight
		}
	}
	if cfg.TileWidth < 0 || cfg.TileHeight < 0 {
		return nil, fmt.Errorf("tile extents must be non-negative: %dx%d", cfg.TileWidth, cfg.TileHeight)
	}
	return &Engine[F]{cfg: cfg, info: info, ops: simdops.For[F]()}, nil
}

// KernelName returns the name of the configured kernel.
func (e *Engine[F]) KernelName() string { return e.info.Name }

// TapCount returns the per-coordinate tap count after low-pass widening.
func (e *Engine[F]) TapCount() int {
	scaling := e.cfg.ScaleFactor
	if e.cfg.Upsample {
		scaling = 1
	}
	return int(math.Ceil(float64(e.info.Taps) / scaling))
}

// ScaleFactor returns the configured scale factor.
func (e *Engine[F]) ScaleFactor() float64 { return e.cfg.ScaleFactor }

// Resize fills dst by resampling src. dst's extents choose the output size;
// the scale factor only drives the output-to-source coordinate mapping.
// Channel extents must match. Zero-extent input or output is a no-op.
func (e *Engine[F]) Resize(dst, src *Plane[F]) error {
	if err := src.validate(); err != nil {
		return fmt.Errorf("input plane: %w", err)
	}
	if err := dst.validate(); err != nil {
		return fmt.Errorf("output plane: %w", err)
	}
	if dst.Channels != src.Channels {
		return fmt.Errorf("channel extent mismatch: input %d, output %d", src.Channels, dst.Channels)
	}
	if dst.Width == 0 || dst.Height == 0 || src.Width == 0 || src.Height == 0 {
		return nil
	}
	e.resize(dst, src, e.cfg.Upsample)
	return nil
}

// resize runs the two separable passes over all output tiles. xFirst selects
// the horizontal-first order; both orders produce identical results, so the
// flag is a pure execution-plan decision (normally tied to Upsample).
func (e *Engine[F]) resize(dst, src *Plane[F], xFirst bool) {
	wx := makeWeightTable[F](dst.MinX, dst.Width, e.cfg.ScaleFactor, e.info, e.cfg.Upsample)
	wy := makeWeightTable[F](dst.MinY, dst.Height, e.cfg.ScaleFactor, e.info, e.cfg.Upsample)

	tileH := e.cfg.TileHeight
	bands := (dst.Height + tileH - 1) / tileH

	workers := 1
	if e.cfg.Parallel && bands > 1 {
		workers = e.cfg.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		workers = min(workers, bands)
	}

	if workers == 1 {
		s := &tileScratch[F]{}
		for band := range bands {
			e.resizeBand(dst, src, &wx, &wy, band, xFirst, s)
		}
		return
	}

	// Bands write disjoint output rows and only read the shared input and
	// weight tables, so they need no locking and the result is identical
	// for any worker count.
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := &tileScratch[F]{}
			for band := range jobs {
				e.resizeBand(dst, src, &wx, &wy, band, xFirst, s)
			}
		}()
	}
	for band := range bands {
		jobs <- band
	}
	close(jobs)
	wg.Wait()
}

// resizeBand processes one horizontal band of output tiles.
func (e *Engine[F]) resizeBand(dst, src *Plane[F], wx, wy *weightTable[F], band int, xFirst bool, s *tileScratch[F]) {
	ty0 := dst.MinY + band*e.cfg.TileHeight
	ty1 := min(ty0+e.cfg.TileHeight, dst.MinY+dst.Height)

	for tx0 := dst.MinX; tx0 < dst.MinX+dst.Width; tx0 += e.cfg.TileWidth {
		tx1 := min(tx0+e.cfg.TileWidth, dst.MinX+dst.Width)
		if xFirst {
			e.tileXFirst(dst, src, wx, wy, tx0, tx1, ty0, ty1, s)
		} else {
			e.tileYFirst(dst, src, wx, wy, tx0, tx1, ty0, ty1, s)
		}
	}
}

// tileScratch holds per-worker buffers reused across tiles. Intermediate
// one-axis planes live here; they are never exposed outside the engine.
type tileScratch[F simdops.Float] struct {
	inter []F   // intermediate resampled plane for the current tile
	row   []F   // edge-replicated source row window
	acc   []F   // vertical accumulator (x-first order)
	rows  [][]F // cached output row slices, one per channel
}

func grow[F simdops.Float](buf []F, n int) []F {
	if cap(buf) < n {
		return make([]F, n)
	}
	return buf[:n]
}

// tileYFirst computes one output tile in vertical-then-horizontal order
// (downsampling plan). For each output row the vertical pass condenses the
// tap window of source rows into a single intermediate row spanning just
// the source columns the horizontal pass will touch; the horizontal pass
// then reduces contiguous tap windows of that row with dot products.
func (e *Engine[F]) tileYFirst(dst, src *Plane[F], wx, wy *weightTable[F], tx0, tx1, ty0, ty1 int, s *tileScratch[F]) {
	xlo, xhi := wx.window(tx0, tx1)
	iw := xhi - xlo
	taps := wy.taps
	channels := dst.Channels

	s.inter = grow(s.inter, iw*channels)
	s.row = grow(s.row, iw)
	if cap(s.rows) < channels {
		s.rows = make([][]F, channels)
	}
	rows := s.rows[:channels]

	for y := ty0; y < ty1; y++ {
		begin, wrow := wy.at(y)

		for c := range channels {
			interC := s.inter[c*iw : (c+1)*iw]
			win := src.rowWindow(s.row, begin, xlo, xhi, c)
			e.ops.Scale(interC, win, wrow[0])
			for k := 1; k < taps; k++ {
				win = src.rowWindow(s.row, begin+k, xlo, xhi, c)
				addScaled(interC, win, wrow[k])
			}
			rows[c] = dst.Row(y, c)
		}

		for x := tx0; x < tx1; x++ {
			xb, wcol := wx.at(x)
			off := xb - xlo
			for c := range channels {
				v := e.ops.DotProductUnsafe(wcol, s.inter[c*iw+off:c*iw+off+wx.taps])
				rows[c][x-dst.MinX] = clamp01(v)
			}
		}
	}
}

// tileXFirst computes one output tile in horizontal-then-vertical order
// (upsampling plan). The horizontal pass fills an intermediate plane
// covering the tile's columns and the source rows its vertical tap windows
// reach; the vertical pass then blends those intermediate rows, which keeps
// the final, highest-volume pass on contiguous output rows.
func (e *Engine[F]) tileXFirst(dst, src *Plane[F], wx, wy *weightTable[F], tx0, tx1, ty0, ty1 int, s *tileScratch[F]) {
	ylo, yhi := wy.window(ty0, ty1)
	ih := yhi - ylo
	xwlo, xwhi := wx.window(tx0, tx1)
	tw := tx1 - tx0
	channels := dst.Channels

	s.inter = grow(s.inter, ih*channels*tw)
	s.row = grow(s.row, xwhi-xwlo)
	s.acc = grow(s.acc, tw)

	// Horizontal pass into the intermediate plane. Out-of-range source rows
	// repeat the edge row, so the plane is defined for the whole tap window.
	for yy := ylo; yy < yhi; yy++ {
		for c := range channels {
			win := src.rowWindow(s.row, yy, xwlo, xwhi, c)
			interRow := s.inter[((yy-ylo)*channels+c)*tw : ((yy-ylo)*channels+c+1)*tw]
			for x := tx0; x < tx1; x++ {
				xb, wcol := wx.at(x)
				off := xb - xwlo
				interRow[x-tx0] = e.ops.DotProductUnsafe(wcol, win[off:off+wx.taps])
			}
		}
	}

	// Vertical pass over intermediate rows.
	for y := ty0; y < ty1; y++ {
		begin, wrow := wy.at(y)
		for c := range channels {
			base := ((begin-ylo)*channels + c) * tw
			e.ops.Scale(s.acc, s.inter[base:base+tw], wrow[0])
			for k := 1; k < wy.taps; k++ {
				base = ((begin+k-ylo)*channels + c) * tw
				addScaled(s.acc, s.inter[base:base+tw], wrow[k])
			}

			out := dst.Row(y, c)
			for j, v := range s.acc[:tw] {
				out[tx0-dst.MinX+j] = clamp01(v)
			}
		}
	}
}

// addScaled accumulates dst[i] += src[i]*w. Unrolled so the compiler can
// keep the adds in vector registers; slices always have equal length here.
func addScaled[F simdops.Float](dst, src []F, w F) {
	n := len(dst) &^ (loopUnrollFactor - 1)
	for i := 0; i < n; i += loopUnrollFactor {
		dst[i] += src[i] * w
		dst[i+1] += src[i+1] * w
		dst[i+2] += src[i+2] * w
		dst[i+3] += src[i+3] * w
	}
	for i := n; i < len(dst); i++ {
		dst[i] += src[i] * w
	}
}

// clamp01 clamps a final output sample into [0, 1]. Cubic and Lanczos
// kernels have negative lobes that overshoot at high-contrast edges; the
// clamp assumes normalized intensities and is the only nonlinearity outside
// the kernels themselves.
func clamp01[F simdops.Float](v F) F {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
