// Package kernel provides the 1D interpolation kernels used for image
// resampling.
//
// Each kernel is a pure, deterministic weight function of a single offset:
// given the distance t from the filter center in native kernel units, it
// returns the unnormalized contribution of the sample at that offset. The
// resizing engine evaluates the kernel at scaled offsets and normalizes the
// resulting taps, so only the shape of the function matters here, not its
// absolute gain.
//
// Four kernels are supported, in increasing order of support width and
// output quality: box (1 tap), linear (2 taps), Keys cubic (4 taps) and
// 3-lobe Lanczos (6 taps).
package kernel

import (
	"fmt"
	"math"
)

// Kind enumerates the supported interpolation kernels.
type Kind int

const (
	// Box is nearest-neighbor (upsampling) or area averaging (downsampling).
	// Fastest, with visible blockiness when upsampling.
	Box Kind = iota

	// Linear is the tent filter, equivalent to bilinear interpolation.
	Linear

	// Cubic is the Keys bicubic kernel with a = -0.5. Continuous and once
	// differentiable at its breakpoints. Good default for photographs.
	Cubic

	// Lanczos is the 3-lobe Lanczos windowed-sinc kernel. Sharpest results,
	// at the cost of ringing near high-contrast edges.
	Lanczos
)

// Func evaluates a kernel weight at offset t, measured from the filter
// center in native kernel units. Defined for all real t; zero outside the
// kernel's support.
type Func func(t float64) float64

// Info describes one interpolation kernel: its name, its native tap count
// (the number of source samples its support spans at unit scale) and its
// weight function.
type Info struct {
	Name string
	Taps int
	Fn   Func
}

// keysAlpha is the free parameter of the Keys cubic family. -0.5 gives the
// Catmull-Rom spline, which interpolates the source samples exactly.
const keysAlpha = -0.5

// lanczosLobes is the number of sinc lobes kept by the Lanczos window.
const lanczosLobes = 3.0

// kernels is the dispatch table, indexed by Kind.
var kernels = [...]Info{
	Box:     {Name: "box", Taps: 1, Fn: box},
	Linear:  {Name: "linear", Taps: 2, Fn: linear},
	Cubic:   {Name: "cubic", Taps: 4, Fn: cubic},
	Lanczos: {Name: "lanczos", Taps: 6, Fn: lanczos},
}

// ByKind returns the kernel descriptor for the given kind.
func ByKind(k Kind) (Info, error) {
	if k < Box || int(k) >= len(kernels) {
		return Info{}, fmt.Errorf("unknown kernel kind %d", int(k))
	}
	return kernels[k], nil
}

// Parse maps a kernel name ("box", "linear", "cubic", "lanczos") to its Kind.
func Parse(name string) (Kind, error) {
	for k, info := range kernels {
		if info.Name == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown kernel %q", name)
}

// String returns the kernel name, or "unknown" for an invalid kind.
func (k Kind) String() string {
	if k < Box || int(k) >= len(kernels) {
		return "unknown"
	}
	return kernels[k].Name
}

// box is the unit pulse: 1 inside [-0.5, 0.5], 0 outside.
func box(t float64) float64 {
	if math.Abs(t) <= 0.5 {
		return 1
	}
	return 0
}

// linear is the tent function: 1-|t| inside (-1, 1), 0 outside.
func linear(t float64) float64 {
	tt := math.Abs(t)
	if tt < 1 {
		return 1 - tt
	}
	return 0
}

// cubic is the Keys piecewise cubic with a = keysAlpha.
//
//	(a+2)|t|^3 - (a+3)|t|^2 + 1          for |t| < 1
//	a|t|^3 - 5a|t|^2 + 8a|t| - 4a        for 1 <= |t| < 2
//	0                                    otherwise
func cubic(t float64) float64 {
	const a = keysAlpha
	tt := math.Abs(t)
	tt2 := tt * tt
	tt3 := tt2 * tt
	switch {
	case tt < 1:
		return (a+2)*tt3 - (a+3)*tt2 + 1
	case tt < 2:
		return a*tt3 - 5*a*tt2 + 8*a*tt - 4*a
	default:
		return 0
	}
}

// lanczos is the 3-lobe Lanczos kernel: sinc(t) * sinc(t/3) inside
// (-3, 3), 0 outside.
func lanczos(t float64) float64 {
	if math.Abs(t) >= lanczosLobes {
		return 0
	}
	return sinc(t) * sinc(t/lanczosLobes)
}

// sinc is the normalized sinc function sin(pi*x)/(pi*x), with the removable
// singularity at zero filled in.
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
