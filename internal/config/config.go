// Package config handles holocube configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ayusman/holocube/internal/capture"
	"github.com/ayusman/holocube/internal/detector"
	"github.com/ayusman/holocube/internal/rotation"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of a run.
type Config struct {
	CameraID        int
	MinConfidence   float64
	MinTrackingConf float64
	Smoothing       float64 // weight of the previous rotation state
	TargetFPS       int
	Mirror          bool
	Preview         bool
	LogLevel        string
}

// Default returns the built-in defaults.
func Default() *Config {
	det := detector.DefaultConfig()
	return &Config{
		CameraID:        capture.DefaultDevice,
		MinConfidence:   det.MinConfidence,
		MinTrackingConf: det.MinTrackingConf,
		Smoothing:       rotation.Retention,
		TargetFPS:       60,
		Mirror:          true,
		Preview:         true,
		LogLevel:        "info",
	}
}

// Load returns the defaults overridden by HOLOCUBE_* environment variables.
// Unparseable values are ignored.
func Load() *Config {
	def := Default()
	return &Config{
		CameraID:        getEnvInt("HOLOCUBE_CAMERA", def.CameraID),
		MinConfidence:   getEnvFloat("HOLOCUBE_MIN_CONFIDENCE", def.MinConfidence),
		MinTrackingConf: getEnvFloat("HOLOCUBE_MIN_TRACKING", def.MinTrackingConf),
		Smoothing:       getEnvFloat("HOLOCUBE_SMOOTHING", def.Smoothing),
		TargetFPS:       getEnvInt("HOLOCUBE_FPS", def.TargetFPS),
		Mirror:          getEnvBool("HOLOCUBE_MIRROR", def.Mirror),
		Preview:         getEnvBool("HOLOCUBE_PREVIEW", def.Preview),
		LogLevel:        getEnv("HOLOCUBE_LOG_LEVEL", def.LogLevel),
	}
}

// RegisterFlags binds command-line flags to c, using the current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.CameraID, "camera", c.CameraID, "camera device index")
	fs.Float64Var(&c.MinConfidence, "min-confidence", c.MinConfidence, "minimum hand detection confidence (0-1)")
	fs.Float64Var(&c.MinTrackingConf, "min-tracking", c.MinTrackingConf, "minimum hand tracking confidence (0-1)")
	fs.Float64Var(&c.Smoothing, "smoothing", c.Smoothing, "weight of the previous rotation when smoothing (0-1)")
	fs.IntVar(&c.TargetFPS, "fps", c.TargetFPS, "render frame rate cap")
	fs.BoolVar(&c.Mirror, "mirror", c.Mirror, "mirror the camera feed (selfie view)")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "show the camera feed with landmarks")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// Validate checks ranges.
func (c *Config) Validate() error {
	switch {
	case c.CameraID < 0:
		return fmt.Errorf("%w: camera index %d is negative", ErrInvalid, c.CameraID)
	case c.MinConfidence < 0 || c.MinConfidence > 1:
		return fmt.Errorf("%w: min confidence %v outside [0,1]", ErrInvalid, c.MinConfidence)
	case c.MinTrackingConf < 0 || c.MinTrackingConf > 1:
		return fmt.Errorf("%w: min tracking confidence %v outside [0,1]", ErrInvalid, c.MinTrackingConf)
	case c.Smoothing <= 0 || c.Smoothing >= 1:
		return fmt.Errorf("%w: smoothing %v outside (0,1)", ErrInvalid, c.Smoothing)
	case c.TargetFPS < 1:
		return fmt.Errorf("%w: fps %d < 1", ErrInvalid, c.TargetFPS)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Detector returns the hand detector settings. Only the first hand is used.
func (c *Config) Detector() detector.Config {
	return detector.Config{
		MaxHands:        1,
		MinConfidence:   c.MinConfidence,
		MinTrackingConf: c.MinTrackingConf,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
