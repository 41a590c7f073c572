package resizer

// Channel constants
const (
	grayChannels = 1 // Single-channel (grayscale) buffer
	rgbaChannels = 4 // Channel count used by the image.Image conversions
)

// Image conversion constants
const (
	// sampleScale16 converts between normalized [0, 1] samples and the
	// 16-bit color values image.Image exposes.
	sampleScale16 = 65535.0
)
