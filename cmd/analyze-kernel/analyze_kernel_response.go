// Command analyze-kernel prints diagnostic tables for the interpolation
// kernels: per-phase tap weights, raw DC gain before normalization, and the
// frequency response of the oversampled impulse.
package main

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-image-resampler/internal/kernel"
)

const (
	// Phase analysis parameters
	numPhases = 8 // Fractional output phases to tabulate per kernel

	// Frequency response parameters
	oversample = 64   // Samples per input pixel when sampling the impulse
	fftSize    = 4096 // FFT length (impulse is zero-padded to this)

	// Display limits
	maxResponsePoints = 9     // Frequencies to print between DC and Nyquist
	dbFloor           = -120.0 // Clamp for log magnitude display
)

func main() {
	kinds := []kernel.Kind{kernel.Box, kernel.Linear, kernel.Cubic, kernel.Lanczos}

	for _, kind := range kinds {
		info, err := kernel.ByKind(kind)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("=== %s (%d native taps) ===\n", info.Name, info.Taps)
		printPhaseTaps(info)
		printFrequencyResponse(info)
		fmt.Println()
	}
}

// phaseTaps computes the discrete taps for one fractional output phase: the
// kernel sampled at integer offsets from the phase position, then normalized
// to unit sum. This is the per-coordinate computation the resampler performs
// for every output pixel.
func phaseTaps(info kernel.Info, phase float64) []float64 {
	radius := 0.5 * float64(info.Taps)
	begin := math.Ceil(phase - radius)

	taps := make([]float64, info.Taps)
	for i := range taps {
		taps[i] = info.Fn(begin + float64(i) - phase)
	}
	return taps
}

// printPhaseTaps tabulates raw tap weights and their DC gain across output
// phases. The raw gain drifts away from 1 between phases, which is exactly
// what per-coordinate normalization corrects.
func printPhaseTaps(info kernel.Info) {
	fmt.Println("Raw taps per phase (before normalization):")

	var minDC, maxDC float64 = math.Inf(1), math.Inf(-1)
	for p := range numPhases {
		phase := float64(p) / numPhases
		taps := phaseTaps(info, phase)
		dc := floats.Sum(taps)
		minDC = math.Min(minDC, dc)
		maxDC = math.Max(maxDC, dc)

		fmt.Printf("  phase %.3f: DC = %.10f  taps =", phase, dc)
		for _, w := range taps {
			fmt.Printf(" %+.6f", w)
		}
		fmt.Println()
	}
	fmt.Printf("DC gain spread across phases: %.10f .. %.10f\n", minDC, maxDC)
}

// printFrequencyResponse samples the kernel impulse on a dense grid and
// prints the magnitude response from DC to the input Nyquist rate.
func printFrequencyResponse(info kernel.Info) {
	radius := 0.5 * float64(info.Taps)

	// Oversampled impulse, zero-padded to the FFT length.
	impulse := make([]float64, fftSize)
	n := int(2 * radius * oversample)
	var sum float64
	for i := range n {
		t := (float64(i)+0.5)/oversample - radius
		impulse[i] = info.Fn(t)
		sum += impulse[i]
	}
	// Normalize to unit DC gain so kernels are comparable.
	floats.Scale(1/sum, impulse[:n])

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, impulse)

	fmt.Println("Frequency response (f in cycles per input pixel):")
	for p := 0; p <= maxResponsePoints; p++ {
		// f = 0.5 is the input Nyquist rate.
		f := 0.5 * float64(p) / maxResponsePoints
		bin := int(math.Round(f / oversample * fftSize))
		mag := cmplx.Abs(coeffs[bin])

		db := dbFloor
		if mag > 0 {
			db = math.Max(20*math.Log10(mag), dbFloor)
		}
		fmt.Printf("  f = %.4f: %8.3f dB\n", f, db)
	}
}
