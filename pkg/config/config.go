// Package config loads render settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrInvalid is wrapped by every error caused by a malformed setting
var ErrInvalid = errors.New("invalid setting")

// Environment variable names
const (
	EnvScene    = "RAYTRACER_SCENE"
	EnvWidth    = "RAYTRACER_WIDTH"
	EnvSamples  = "RAYTRACER_SAMPLES"
	EnvMaxDepth = "RAYTRACER_MAX_DEPTH"
	EnvWorkers  = "RAYTRACER_WORKERS"
	EnvSeed     = "RAYTRACER_SEED"
	EnvOutput   = "RAYTRACER_OUTPUT"
	EnvAddr     = "RAYTRACER_ADDR"

	EnvS3Endpoint  = "S3_ENDPOINT"
	EnvS3Region    = "S3_REGION"
	EnvS3Bucket    = "S3_BUCKET"
	EnvS3AccessKey = "S3_ACCESS_KEY"
	EnvS3SecretKey = "S3_SECRET_KEY"
	EnvS3Prefix    = "S3_PREFIX"
)

// Config holds the driver settings. Zero Width and SamplesPerPixel and a
// MaxDepth of -1 leave the scene's own values in place.
type Config struct {
	Scene           string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int // 0 = one per CPU
	Seed            int64
	Output          string // File path, or "-" for stdout
	Addr            string // Listen address for the web server
	S3              output.S3Config
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Scene:    "default",
		MaxDepth: -1,
		Seed:     renderer.DefaultRenderConfig().Seed,
		Output:   "render.ppm",
		Addr:     ":8080",
		S3:       output.S3Config{Region: "us-east-1"},
	}
}

// source resolves a key from the process environment first, then the file
type source struct {
	file map[string]string
}

func (s source) lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := s.file[key]
	return v, ok
}

func (s source) str(key string, target *string) {
	if v, ok := s.lookup(key); ok && v != "" {
		*target = v
	}
}

func (s source) integer(key string, target *int) error {
	v, ok := s.lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
	}
	*target = n
	return nil
}

func (s source) integer64(key string, target *int64) error {
	v, ok := s.lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v)
	}
	*target = n
	return nil
}

// Load reads settings from envFile (if it exists) and the environment.
// Variables already set in the environment take precedence over the file,
// and the file never modifies the process environment.
func Load(envFile string) (Config, error) {
	cfg := Default()

	src := source{file: map[string]string{}}
	if envFile != "" {
		values, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			src.file = values
		case errors.Is(err, fs.ErrNotExist):
			// no file, environment only
		default:
			return cfg, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	src.str(EnvScene, &cfg.Scene)
	src.str(EnvOutput, &cfg.Output)
	src.str(EnvAddr, &cfg.Addr)
	for _, field := range []struct {
		key    string
		target *int
	}{
		{EnvWidth, &cfg.Width},
		{EnvSamples, &cfg.SamplesPerPixel},
		{EnvMaxDepth, &cfg.MaxDepth},
		{EnvWorkers, &cfg.Workers},
	} {
		if err := src.integer(field.key, field.target); err != nil {
			return cfg, err
		}
	}
	if err := src.integer64(EnvSeed, &cfg.Seed); err != nil {
		return cfg, err
	}

	src.str(EnvS3Endpoint, &cfg.S3.Endpoint)
	src.str(EnvS3Region, &cfg.S3.Region)
	src.str(EnvS3Bucket, &cfg.S3.Bucket)
	src.str(EnvS3AccessKey, &cfg.S3.AccessKey)
	src.str(EnvS3SecretKey, &cfg.S3.SecretKey)
	src.str(EnvS3Prefix, &cfg.S3.Prefix)

	return cfg, cfg.Validate()
}

// Validate rejects settings no render could use
func (c Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalid, c.Width)
	}
	if c.SamplesPerPixel < 0 {
		return fmt.Errorf("%w: samples must not be negative, got %d", ErrInvalid, c.SamplesPerPixel)
	}
	if c.MaxDepth < -1 {
		return fmt.Errorf("%w: max depth must be -1 (scene default) or at least 0, got %d", ErrInvalid, c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	return nil
}

// CameraOverrides returns the camera fields this configuration sets
func (c Config) CameraOverrides() renderer.CameraConfig {
	return renderer.CameraConfig{Width: c.Width}
}

// ApplySampling overrides the scene's sampling settings where configured
func (c Config) ApplySampling(base renderer.SamplingConfig) renderer.SamplingConfig {
	if c.SamplesPerPixel > 0 {
		base.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth >= 0 {
		base.MaxDepth = c.MaxDepth
	}
	return base
}

// RenderConfig returns the scheduling settings for the renderer
func (c Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		NumWorkers: c.Workers,
		Seed:       c.Seed,
	}
}
