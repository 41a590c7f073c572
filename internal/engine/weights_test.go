package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-image-resampler/internal/kernel"
	"github.com/tphakala/go-image-resampler/internal/testutil"
)

func mustKernel(t *testing.T, k kernel.Kind) kernel.Info {
	t.Helper()
	info, err := kernel.ByKind(k)
	require.NoError(t, err)
	return info
}

// TestWeightTable_Normalization verifies that for every kernel, scale factor
// and output coordinate the tap weights sum to 1.
func TestWeightTable_Normalization(t *testing.T) {
	kinds := []kernel.Kind{kernel.Box, kernel.Linear, kernel.Cubic, kernel.Lanczos}
	scales := []struct {
		scale    float64
		upsample bool
	}{
		{1.0 / 3.0, false},
		{0.5, false},
		{0.77, false},
		{1.0, false},
		{1.0, true},
		{1.5, true},
		{2.0, true},
		{3.3, true},
	}

	const outExtent = 40
	for _, kind := range kinds {
		info := mustKernel(t, kind)
		for _, sc := range scales {
			wt := makeWeightTable[float32](0, outExtent, sc.scale, info, sc.upsample)
			for o := range outExtent {
				_, w := wt.at(o)
				testutil.AssertSumsTo(t, w, 1.0, testutil.WeightSumTolerance,
					"%s scale=%v o=%d", info.Name, sc.scale, o)
			}
		}
	}
}

// TestWeightTable_TapCount verifies the low-pass widening rule: native tap
// count when upsampling, ceil(native/scale) when downsampling.
func TestWeightTable_TapCount(t *testing.T) {
	cubic := mustKernel(t, kernel.Cubic)

	up := makeWeightTable[float32](0, 4, 2.0, cubic, true)
	assert.Equal(t, cubic.Taps, up.taps, "upsampling keeps native taps")

	down2 := makeWeightTable[float32](0, 4, 0.5, cubic, false)
	assert.Equal(t, cubic.Taps*2, down2.taps, "2x downscale doubles taps")

	down3 := makeWeightTable[float32](0, 4, 1.0/3.0, cubic, false)
	assert.Equal(t, int(math.Ceil(float64(cubic.Taps)*3)), down3.taps)
}

// TestWeightTable_IdentityScale verifies that at scale 1 every output
// coordinate degenerates to a single unit tap centered on its source pixel.
func TestWeightTable_IdentityScale(t *testing.T) {
	for _, kind := range []kernel.Kind{kernel.Box, kernel.Linear, kernel.Cubic, kernel.Lanczos} {
		info := mustKernel(t, kind)
		wt := makeWeightTable[float32](0, 8, 1.0, info, false)
		for o := range 8 {
			begin, w := wt.at(o)
			for k, v := range w {
				if begin+k == o {
					assert.InDelta(t, 1.0, float64(v), testutil.WeightSumTolerance,
						"%s: center tap at o=%d", info.Name, o)
				} else {
					assert.InDelta(t, 0.0, float64(v), testutil.WeightSumTolerance,
						"%s: off-center tap %d at o=%d", info.Name, k, o)
				}
			}
		}
	}
}

// TestWeightTable_BoxDownsampleAverage verifies that 2x box downscaling
// produces an exact two-tap average.
func TestWeightTable_BoxDownsampleAverage(t *testing.T) {
	box := mustKernel(t, kernel.Box)
	wt := makeWeightTable[float32](0, 4, 0.5, box, false)
	require.Equal(t, 2, wt.taps)

	for o := range 4 {
		begin, w := wt.at(o)
		assert.Equal(t, 2*o, begin, "o=%d", o)
		assert.InDelta(t, 0.5, float64(w[0]), testutil.ExactTolerance)
		assert.InDelta(t, 0.5, float64(w[1]), testutil.ExactTolerance)
	}
}

// TestWeightTable_BeginMonotonic verifies begin never decreases along the
// axis, which window() relies on when sizing tile intermediates.
func TestWeightTable_BeginMonotonic(t *testing.T) {
	lanczos := mustKernel(t, kernel.Lanczos)
	for _, sc := range []struct {
		scale    float64
		upsample bool
	}{{0.31, false}, {1.7, true}} {
		wt := makeWeightTable[float32](0, 64, sc.scale, lanczos, sc.upsample)
		for o := 1; o < 64; o++ {
			assert.GreaterOrEqual(t, wt.begin[o], wt.begin[o-1], "scale=%v o=%d", sc.scale, o)
		}
	}
}

// TestWeightTable_Window verifies window bounds cover exactly the touched
// source range.
func TestWeightTable_Window(t *testing.T) {
	cubic := mustKernel(t, kernel.Cubic)
	wt := makeWeightTable[float32](10, 20, 2.0, cubic, true)

	lo, hi := wt.window(12, 18)
	assert.Equal(t, wt.begin[2], lo)
	assert.Equal(t, wt.begin[7]+wt.taps, hi)
	assert.Greater(t, hi, lo)
}

// TestWeightTable_NonZeroOrigin verifies that the output origin shifts the
// source mapping, not the weights themselves.
func TestWeightTable_NonZeroOrigin(t *testing.T) {
	linear := mustKernel(t, kernel.Linear)

	base := makeWeightTable[float32](0, 8, 2.0, linear, true)
	shifted := makeWeightTable[float32](4, 8, 2.0, linear, true)

	// Coordinate o+4 in the shifted table maps two source pixels further
	// right than o in the base table, with identical fractional phase.
	for o := range 4 {
		bBase, wBase := base.at(o)
		bShift, wShift := shifted.at(o + 4)
		assert.Equal(t, bBase+2, bShift, "o=%d", o)
		testutil.AssertSamplesEqual(t, wBase, wShift, testutil.ExactTolerance)
	}
}
