package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// options holds everything the command line controls
type options struct {
	cfg    config.Config
	vfov   float64
	thumb  uint
	upload bool
	help   bool
}

// parseArgs loads configuration from the env file and environment, then
// applies the flags that were given explicitly
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	envFile := fs.String("env", ".env", "Path to a .env file with RAYTRACER_* and S3_* settings")
	sceneName := fs.String("scene", "", "Scene to render (see -help for the list)")
	width := fs.Int("width", 0, "Image width in pixels (0 = scene default)")
	samples := fs.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := fs.Int("depth", -1, "Maximum bounce depth (-1 = scene default)")
	vfov := fs.Float64("vfov", 0, "Vertical field of view in degrees (0 = scene default)")
	workers := fs.Int("workers", 0, "Number of parallel workers (0 = one per CPU)")
	seed := fs.Int64("seed", 0, "Base random seed")
	out := fs.String("out", "", "Output file (.ppm, .png, .jpg, ...) or - for stdout")
	thumb := fs.Uint("thumb", 0, "Also write a PNG thumbnail no larger than this many pixels")
	upload := fs.Bool("upload", false, "Upload the result to the configured S3 bucket")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return options{}, err
	}

	// Flags given on the command line win over the environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneName
		case "width":
			cfg.Width = *width
		case "samples":
			cfg.SamplesPerPixel = *samples
		case "depth":
			cfg.MaxDepth = *depth
		case "workers":
			cfg.Workers = *workers
		case "seed":
			cfg.Seed = *seed
		case "out":
			cfg.Output = *out
		}
	})
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	return options{
		cfg:    cfg,
		vfov:   *vfov,
		thumb:  *thumb,
		upload: *upload,
		help:   *help,
	}, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes().Scenes {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Settings may also come from RAYTRACER_* and S3_* environment variables or a .env file.")
}

// createScene builds the configured scene with command line overrides applied
func createScene(opts options) (*scene.Scene, error) {
	overrides := opts.cfg.CameraOverrides()
	overrides.VFov = opts.vfov

	s, err := scene.Create(opts.cfg.Scene, overrides)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig = opts.cfg.ApplySampling(s.SamplingConfig)
	return s, nil
}

// writeOutput writes the image to the configured path, or stdout for "-"
func writeOutput(path string, img *renderer.Image, stdout io.Writer) error {
	if path == "-" {
		return output.WritePPM(stdout, img)
	}
	return output.Save(path, img)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		printHelp(stdout)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if opts.help {
		printHelp(stdout)
		return 0
	}

	// Keep stdout clean when the image itself goes there
	var logger core.Logger = renderer.NewWriterLogger(stdout)
	if opts.cfg.Output == "-" {
		logger = renderer.NewWriterLogger(stderr)
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating scene: %v\n", err)
		return 1
	}
	logger.Printf("Using %s scene (%d shapes)\n", opts.cfg.Scene, selectedScene.GetPrimitiveCount())

	raytracer, err := renderer.NewRaytracer(selectedScene, opts.cfg.RenderConfig(), logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error configuring renderer: %v\n", err)
		return 1
	}

	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering: %v\n", err)
		return 1
	}
	logger.Printf("Traced %d samples (%dx%d, %d spp) in %v\n",
		stats.TotalSamples, stats.Width, stats.Height, stats.SamplesPerPixel, stats.Duration)

	if err := writeOutput(opts.cfg.Output, img, stdout); err != nil {
		fmt.Fprintf(stderr, "Error saving image: %v\n", err)
		return 1
	}
	if opts.cfg.Output != "-" {
		logger.Printf("Render saved as %s\n", opts.cfg.Output)
	}

	if opts.thumb > 0 && opts.cfg.Output != "-" {
		thumbPath, err := output.SaveThumbnail(opts.cfg.Output, img, opts.thumb)
		if err != nil {
			fmt.Fprintf(stderr, "Error saving thumbnail: %v\n", err)
			return 1
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if opts.upload {
		uploader, err := output.NewS3Uploader(opts.cfg.S3, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Error configuring upload: %v\n", err)
			return 1
		}
		name := opts.cfg.Output
		if name == "-" {
			name = opts.cfg.Scene + ".ppm"
		}
		if err := uploader.UploadImage(ctx, uploader.Key(name), img); err != nil {
			fmt.Fprintf(stderr, "Error uploading: %v\n", err)
			return 1
		}
	}

	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
