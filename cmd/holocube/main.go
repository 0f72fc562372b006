package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ayusman/holocube/internal/app"
	"github.com/ayusman/holocube/internal/capture"
	"github.com/ayusman/holocube/internal/config"
	"github.com/ayusman/holocube/internal/detector"
	"github.com/ayusman/holocube/internal/log"
	"github.com/ayusman/holocube/internal/render"
)

// GLFW must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	cfg := config.Load()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	log.Init(cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Error("holocube failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Try MediaPipe first, fall back to a detector that never sees a hand
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(cfg.Detector()); err == nil {
		det = mp
		log.Info("using MediaPipe hand detection", "min_confidence", cfg.MinConfidence)
	} else {
		log.Warn("MediaPipe not available, the cube will stay still", "error", err)
		det = detector.NewMockDetector()
	}

	window, err := render.NewWindow(render.DefaultScene(), render.DefaultTitle)
	if err != nil {
		det.Close()
		return err
	}

	var preview app.Preview
	if cfg.Preview {
		preview = capture.NewPreview(capture.DefaultPreviewTitle)
	}

	a := app.New(app.Config{
		Camera:    capture.NewCamera(cfg.CameraID),
		Detector:  det,
		Extractor: detector.NewExtractor(det, detector.WithMirror(cfg.Mirror)),
		Renderer:  window,
		Preview:   preview,
		Smoothing: cfg.Smoothing,
		TargetFPS: cfg.TargetFPS,
		Logger:    log.L(),
	})

	return a.Run(ctx)
}
