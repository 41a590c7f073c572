package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-image-resampler/internal/kernel"
	"github.com/tphakala/go-image-resampler/internal/simdops"
)

// weightTable holds, for each output coordinate along one axis, the first
// source index touched and the normalized kernel tap weights.
//
// Weights are computed once per axis and shared across the orthogonal axis
// and all channels. The table is ephemeral: built per Resize call, read-only
// afterwards, safe to share across workers.
type weightTable[F simdops.Float] struct {
	min   int   // first output coordinate covered
	begin []int // first source index per output coordinate
	w     []F   // normalized weights, flat, stride taps
	taps  int
}

// makeWeightTable computes the tap list for every output coordinate in
// [outMin, outMin+outExtent) along one axis.
//
// When downsampling, the kernel is evaluated at offsets scaled by the scale
// factor, which widens its support into a low-pass filter: the tap count
// grows as ceil(nativeTaps/scale). When upsampling the kernel keeps its
// native width. Weights are normalized to sum to exactly 1 per coordinate;
// the sum is non-zero for all supported kernels because every evaluated
// offset lies inside [-radius, radius] by construction of begin.
func makeWeightTable[F simdops.Float](outMin, outExtent int, scale float64, info kernel.Info, upsample bool) weightTable[F] {
	kernelScaling := scale
	if upsample {
		kernelScaling = 1
	}
	radius := 0.5 * float64(info.Taps) / kernelScaling
	taps := int(math.Ceil(float64(info.Taps) / kernelScaling))

	t := weightTable[F]{
		min:   outMin,
		begin: make([]int, outExtent),
		w:     make([]F, outExtent*taps),
		taps:  taps,
	}

	// Weight math stays in float64 regardless of F; the table is tiny
	// compared to the pixel data and the normalization benefits from the
	// extra precision.
	scratch := make([]float64, taps)
	for i := range outExtent {
		// Map the output pixel center into source space.
		source := (float64(outMin+i)+0.5)/scale - 0.5
		begin := int(math.Ceil(source - radius))
		t.begin[i] = begin

		for k := range taps {
			scratch[k] = info.Fn((float64(begin+k) - source) * kernelScaling)
		}
		floats.Scale(1/floats.Sum(scratch), scratch)

		out := t.w[i*taps : (i+1)*taps]
		for k, v := range scratch {
			out[k] = F(v)
		}
	}
	return t
}

// at returns the begin index and weight slice for global output coordinate o.
func (t *weightTable[F]) at(o int) (int, []F) {
	i := o - t.min
	return t.begin[i], t.w[i*t.taps : (i+1)*t.taps]
}

// window returns the half-open source index range touched by output
// coordinates [o0, o1). Callers size per-tile intermediate planes with it.
func (t *weightTable[F]) window(o0, o1 int) (lo, hi int) {
	lo = t.begin[o0-t.min]
	hi = t.begin[o1-1-t.min] + t.taps
	return lo, hi
}
