package resizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-image-resampler/internal/engine"
	"github.com/tphakala/go-image-resampler/internal/kernel"
	"github.com/tphakala/go-image-resampler/internal/simdops"
)

// Resizer is the main interface for image resampling. A Resizer is built for
// one scale factor and kernel and can be reused across buffers; it is safe
// for concurrent use.
type Resizer interface {
	// Resize fills dst by resampling src. The output extents come from dst;
	// the configured scale factor only drives the output-to-source
	// coordinate mapping. Channel extents must match.
	Resize(dst, src *Buffer[float32]) error

	// ScaleFactor returns the configured scale factor.
	ScaleFactor() float64

	// TapCount returns the per-axis filter tap count. When downsampling this
	// includes the low-pass widening, so it grows as the scale factor
	// shrinks.
	TapCount() int

	// Interpolation returns the configured kernel.
	Interpolation() InterpolationType
}

// Config holds resizing configuration.
type Config struct {
	// ScaleFactor is output size over input size, applied uniformly to both
	// axes. Must be positive.
	ScaleFactor float64

	// Interpolation selects the kernel. The zero value is InterpolationCubic.
	Interpolation InterpolationType

	// Upsample declares the scale direction. When true the kernel keeps its
	// native width and the horizontal pass runs first; when false the kernel
	// widens by the scale factor to low-pass filter before decimation.
	// The flag must agree with ScaleFactor: Upsample with a factor below 1
	// (or vice versa) is rejected by Validate. A factor of exactly 1 accepts
	// either setting.
	Upsample bool

	// EnableParallel distributes output tile rows across worker goroutines.
	// Results are bit-identical to serial execution.
	EnableParallel bool

	// Workers is the worker count when EnableParallel is set.
	// 0 means GOMAXPROCS.
	Workers int

	// TileWidth and TileHeight override the output tile extents used to
	// partition work. 0 keeps direction-specific defaults. Tiling affects
	// throughput only, never results.
	TileWidth, TileHeight int
}

// InterpolationType enumerates the interpolation kernels.
type InterpolationType int

const (
	// InterpolationCubic is the Keys cubic kernel (a = -0.5), 4 native taps.
	// The zero value, and the recommended default.
	InterpolationCubic InterpolationType = iota

	// InterpolationBox is the 1-tap box kernel: nearest-neighbor when
	// upsampling, area averaging when downsampling.
	InterpolationBox

	// InterpolationLinear is the 2-tap triangle (bilinear) kernel.
	InterpolationLinear

	// InterpolationLanczos is the 3-lobe Lanczos windowed sinc, 6 native taps.
	InterpolationLanczos
)

// kind maps the public enum onto the kernel table.
func (t InterpolationType) kind() (kernel.Kind, error) {
	switch t {
	case InterpolationBox:
		return kernel.Box, nil
	case InterpolationLinear:
		return kernel.Linear, nil
	case InterpolationCubic:
		return kernel.Cubic, nil
	case InterpolationLanczos:
		return kernel.Lanczos, nil
	default:
		return 0, fmt.Errorf("%w: unknown interpolation type %d", ErrInvalidConfig, int(t))
	}
}

// String returns the kernel name, or "invalid" for unknown values.
func (t InterpolationType) String() string {
	k, err := t.kind()
	if err != nil {
		return "invalid"
	}
	return k.String()
}

// ParseInterpolation resolves a kernel name ("box", "linear", "cubic",
// "lanczos") to its InterpolationType.
func ParseInterpolation(name string) (InterpolationType, error) {
	k, err := kernel.Parse(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch k {
	case kernel.Box:
		return InterpolationBox, nil
	case kernel.Linear:
		return InterpolationLinear, nil
	case kernel.Cubic:
		return InterpolationCubic, nil
	default:
		return InterpolationLanczos, nil
	}
}

// Common errors returned by the resizer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resizer configuration")

	// ErrBufferMismatch indicates incompatible or malformed pixel buffers.
	ErrBufferMismatch = errors.New("buffer mismatch")

	// ErrUnsupported indicates the requested operation is not supported.
	ErrUnsupported = errors.New("operation not supported")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ScaleFactor <= 0 || math.IsNaN(c.ScaleFactor) || math.IsInf(c.ScaleFactor, 0) {
		return fmt.Errorf("%w: scale factor must be positive and finite", ErrInvalidConfig)
	}

	// An inconsistent direction flag silently degrades quality (a widened
	// kernel when upsampling, aliasing when downsampling), so reject it.
	if c.Upsample && c.ScaleFactor < 1 {
		return fmt.Errorf("%w: upsample requested with scale factor %v < 1", ErrInvalidConfig, c.ScaleFactor)
	}
	if !c.Upsample && c.ScaleFactor > 1 {
		return fmt.Errorf("%w: downsample requested with scale factor %v > 1", ErrInvalidConfig, c.ScaleFactor)
	}

	if _, err := c.Interpolation.kind(); err != nil {
		return err
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be non-negative", ErrInvalidConfig)
	}
	if c.TileWidth < 0 || c.TileHeight < 0 {
		return fmt.Errorf("%w: tile extents must be non-negative", ErrInvalidConfig)
	}

	return nil
}

// imageResizer adapts the generic engine to the public float32 interface.
type imageResizer struct {
	config Config
	engine *engine.Engine[float32]
}

// New creates a new resizer with the specified configuration.
func New(config *Config) (Resizer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	eng, err := newEngine[float32](config)
	if err != nil {
		return nil, err
	}

	return &imageResizer{config: *config, engine: eng}, nil
}

// newEngine builds the internal engine from a validated configuration.
func newEngine[F simdops.Float](config *Config) (*engine.Engine[F], error) {
	kind, err := config.Interpolation.kind()
	if err != nil { // already checked by Validate
		return nil, err
	}

	eng, err := engine.New[F](engine.Config{
		ScaleFactor: config.ScaleFactor,
		Kernel:      kind,
		Upsample:    config.Upsample,
		Parallel:    config.EnableParallel,
		Workers:     config.Workers,
		TileWidth:   config.TileWidth,
		TileHeight:  config.TileHeight,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return eng, nil
}

// Resize fills dst by resampling src.
func (r *imageResizer) Resize(dst, src *Buffer[float32]) error {
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
func (r *imageResizer) ScaleFactor() float64 {
	return r.config.ScaleFactor
}

// TapCount returns the per-axis filter tap count.
func (r *imageResizer) TapCount() int {
	return r.engine.TapCount()
}

// Interpolation returns the configured kernel.
func (r *imageResizer) Interpolation() InterpolationType {
	return r.config.Interpolation
}

// Info returns information about a resizer implementation.
type Info struct {
	// Kernel is the interpolation kernel name.
	Kernel string

	// TapCount is the per-axis filter tap count after low-pass widening.
	TapCount int

	// ScaleFactor is the configured scale factor.
	ScaleFactor float64

	// Upsample reports the declared scale direction.
	Upsample bool

	// Parallel reports whether tile rows are distributed across workers.
	Parallel bool

	// Workers is the configured worker count (0 = GOMAXPROCS).
	Workers int
}

// infoProvider is an optional interface for resizers that can provide
// detailed info.
type infoProvider interface {
	GetInfo() Info
}

// GetInfo returns information about a resizer. If the resizer implements the
// infoProvider interface it returns actual values; otherwise it falls back
// to what the Resizer interface exposes.
func GetInfo(r Resizer) Info {
	if provider, ok := r.(infoProvider); ok {
		return provider.GetInfo()
	}

	return Info{
		Kernel:      r.Interpolation().String(),
		TapCount:    r.TapCount(),
		ScaleFactor: r.ScaleFactor(),
	}
}

// GetInfo returns information about the resizer.
func (r *imageResizer) GetInfo() Info {
	return Info{
		Kernel:      r.engine.KernelName(),
		TapCount:    r.engine.TapCount(),
		ScaleFactor: r.config.ScaleFactor,
		Upsample:    r.config.Upsample,
		Parallel:    r.config.EnableParallel,
		Workers:     r.config.Workers,
	}
}
