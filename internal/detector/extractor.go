package detector

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ayusman/holocube/internal/landmark"
)

// Extractor turns one camera frame into an Observation.
type Extractor struct {
	detector Detector
	mirror   bool
	overlay  bool
}

// ExtractorOption customizes an Extractor.
type ExtractorOption func(*Extractor)

// WithMirror flips frames horizontally before detection so the preview
// behaves like a selfie view. Enabled by default.
func WithMirror(mirror bool) ExtractorOption {
	return func(e *Extractor) { e.mirror = mirror }
}

// WithOverlay draws the detected hand onto the frame. Enabled by default.
func WithOverlay(overlay bool) ExtractorOption {
	return func(e *Extractor) { e.overlay = overlay }
}

// NewExtractor wraps d.
func NewExtractor(d Detector, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		detector: d,
		mirror:   true,
		overlay:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs detection on frame. When mirroring is enabled the frame is
// flipped in place, so the caller's preview shows the same image the
// landmarks refer to. ok is false when no hand was found.
func (e *Extractor) Extract(frame *gocv.Mat) (obs landmark.Observation, ok bool, err error) {
	if frame == nil || frame.Empty() {
		return landmark.Observation{}, false, nil
	}

	if e.mirror {
		gocv.Flip(*frame, frame, 1)
	}

	hands, err := e.detector.Detect(frame)
	if err != nil {
		return landmark.Observation{}, false, fmt.Errorf("detect hands: %w", err)
	}

	obs, ok = Observe(hands)
	if ok && e.overlay {
		DrawLandmarks(frame, hands[0])
	}
	return obs, ok, nil
}
