// Command resize-image resizes image files by a scale factor.
//
// Usage:
//
//	resize-image -scale 2 input.png output.png
//	resize-image -scale 0.5 -filter lanczos photo.jpg thumb.jpg
//	resize-image -scale 3 -parallel=false pixelart.png big.png
//
// PNG, JPEG, GIF, BMP, TIFF and WebP inputs are decoded; the output format
// follows the output file extension (WebP output is not supported).
// Parallel processing is enabled by default.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/tphakala/go-image-resampler"
)

const (
	// CLI defaults
	defaultScale  = 2.0
	defaultFilter = "cubic"

	minRequiredArgs = 2

	// JPEG encode quality (out of 100)
	jpegQuality = 92

	// Conversion constant for the throughput summary
	pixelsPerMegapixel = 1e6
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	scale := flag.Float64("scale", defaultScale, "Scale factor, output size over input size (e.g., 2, 0.5, 1.333)")
	filter := flag.String("filter", defaultFilter, "Interpolation filter: box, linear, cubic, lanczos")
	parallel := flag.Bool("parallel", true, "Enable parallel tile processing")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input output\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -scale 2 input.png output.png             # Double the size\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -scale 0.25 photo.jpg thumb.jpg           # Quarter-size thumbnail\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -scale 1.5 -filter lanczos in.png out.png # Sharpest upscale\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	// Start CPU profiling if requested (for PGO)
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	interp, err := resizer.ParseInterpolation(*filter)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Scale: %g", *scale)
		log.Printf("Filter: %s", interp)
		if *parallel {
			log.Printf("Parallel: enabled")
		} else {
			log.Printf("Parallel: disabled")
		}
	}

	start := time.Now()
	stats, err := resizeFile(inputPath, outputPath, *scale, interp, *parallel)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	inputPixels := float64(stats.inputWidth * stats.inputHeight)
	fmt.Printf("Resized %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %dx%d %s -> %dx%d (%s, %d taps)\n",
		stats.inputWidth, stats.inputHeight, stats.format,
		stats.outputWidth, stats.outputHeight,
		stats.kernel, stats.tapCount)
	fmt.Printf("  Duration: %.2fs, Speed: %.1f Mpix/s\n",
		elapsed.Seconds(), inputPixels/pixelsPerMegapixel/elapsed.Seconds())

	return nil
}

type resizeStats struct {
	inputWidth   int
	inputHeight  int
	outputWidth  int
	outputHeight int
	format       string
	kernel       string
	tapCount     int
}

// resizeFile decodes, resizes and re-encodes one image file.
func resizeFile(inputPath, outputPath string, scale float64, interp resizer.InterpolationType, parallel bool) (*resizeStats, error) {
	img, format, err := decodeImage(inputPath)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()

	r, err := resizer.New(&resizer.Config{
		ScaleFactor:    scale,
		Interpolation:  interp,
		Upsample:       scale > 1,
		EnableParallel: parallel,
	})
	if err != nil {
		return nil, err
	}

	src := resizer.FromImage(img)
	dst := resizer.NewBuffer[float32](
		resizer.ScaledExtent(src.Width, scale),
		resizer.ScaledExtent(src.Height, scale),
		src.Channels,
	)
	if err := r.Resize(dst, src); err != nil {
		return nil, err
	}

	out, err := resizer.ToImage(dst)
	if err != nil {
		return nil, err
	}
	if err := encodeImage(outputPath, out); err != nil {
		return nil, err
	}

	info := resizer.GetInfo(r)
	return &resizeStats{
		inputWidth:   bounds.Dx(),
		inputHeight:  bounds.Dy(),
		outputWidth:  dst.Width,
		outputHeight: dst.Height,
		format:       format,
		kernel:       info.Kernel,
		tapCount:     info.TapCount,
	}, nil
}
