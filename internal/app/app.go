// Package app runs the capture, detect, estimate and render loop that
// drives the hologram cube.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/ayusman/holocube/internal/capture"
	"github.com/ayusman/holocube/internal/detector"
	"github.com/ayusman/holocube/internal/rotation"
)

// DefaultFPS caps the render rate.
const DefaultFPS = 60

// Renderer draws the cube. It owns the 3D window.
type Renderer interface {
	Draw(state rotation.State)
	Swap()
	// ShouldClose polls window events and reports a close or quit request.
	ShouldClose() bool
	Close() error
}

// Preview displays the annotated camera frame.
type Preview interface {
	// Show displays frame and reports whether the user asked to quit.
	Show(frame *gocv.Mat) bool
	Close() error
}

// Config holds the collaborators of a run.
type Config struct {
	Camera    capture.Camera
	Detector  detector.Detector
	Extractor *detector.Extractor
	Renderer  Renderer
	Preview   Preview // optional
	Smoothing float64 // defaults to rotation.Retention when zero
	TargetFPS int
	Logger    *slog.Logger
}

// App is one run of the hologram cube.
type App struct {
	config   Config
	smoother rotation.Smoother
	state    rotation.State
	log      *slog.Logger
	stats    stats
}

// New creates an App. Extractor defaults to one wrapping Detector.
func New(config Config) *App {
	if config.TargetFPS <= 0 {
		config.TargetFPS = DefaultFPS
	}
	if config.Smoothing == 0 {
		config.Smoothing = rotation.Retention
	}
	if config.Extractor == nil && config.Detector != nil {
		config.Extractor = detector.NewExtractor(config.Detector)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		config:   config,
		smoother: rotation.NewSmoother(config.Smoothing),
		log:      logger,
	}
}

// State returns the current smoothed rotation.
func (a *App) State() rotation.State {
	return a.state
}

// Run opens the camera and runs the loop until the user quits, the
// context is cancelled or the camera stops delivering frames. Only a
// camera that cannot be opened is reported as an error. All collaborators
// are released before Run returns.
func (a *App) Run(ctx context.Context) error {
	if a.config.Camera == nil || a.config.Extractor == nil || a.config.Renderer == nil {
		return errors.New("app: camera, detector and renderer are required")
	}
	defer a.release()

	if err := a.config.Camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	a.log.Info("render loop started", "fps", a.config.TargetFPS, "smoothing", a.config.Smoothing)
	a.loop(ctx)
	a.log.Info("render loop stopped", "frames", a.stats.total, "state", a.state.String())
	return nil
}

// release closes every collaborator, logging rather than returning errors.
func (a *App) release() {
	if err := a.config.Camera.Close(); err != nil {
		a.log.Warn("close camera", "error", err)
	}
	if a.config.Preview != nil {
		if err := a.config.Preview.Close(); err != nil {
			a.log.Warn("close preview", "error", err)
		}
	}
	if err := a.config.Renderer.Close(); err != nil {
		a.log.Warn("close renderer", "error", err)
	}
	if a.config.Detector != nil {
		if err := a.config.Detector.Close(); err != nil {
			a.log.Warn("close detector", "error", err)
		}
	}
}
