package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/holocube/internal/capture"
	"github.com/ayusman/holocube/internal/detector"
	"github.com/ayusman/holocube/internal/landmark"
	"github.com/ayusman/holocube/internal/rotation"
)

const epsilon = 1e-9

type fakeRenderer struct {
	drawn   []rotation.State
	swaps   int
	closeAt int // ShouldClose reports true once this many frames were drawn; 0 disables
	closed  bool
	polls   int
}

func (r *fakeRenderer) Draw(state rotation.State) {
	r.drawn = append(r.drawn, state)
}

func (r *fakeRenderer) Swap() {
	r.swaps++
}

func (r *fakeRenderer) ShouldClose() bool {
	r.polls++
	return r.closeAt > 0 && len(r.drawn) >= r.closeAt
}
func (r *fakeRenderer) Close() error {
	r.closed = true
	return nil
}

type fakePreview struct {
	shown  int
	quitAt int
	closed bool
}

func (p *fakePreview) Show(frame *gocv.Mat) bool {
	p.shown++
	return p.quitAt > 0 && p.shown >= p.quitAt
}

func (p *fakePreview) Close() error {
	p.closed = true
	return nil
}

func near(a, b rotation.State) bool {
	return math.Abs(a.Pitch-b.Pitch) < epsilon &&
		math.Abs(a.Yaw-b.Yaw) < epsilon &&
		math.Abs(a.Roll-b.Roll) < epsilon
}

// newFrames returns n blank frames that are closed when the test ends.
func newFrames(t *testing.T, n int) []*gocv.Mat {
	t.Helper()
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		m := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
		frames[i] = &m
	}
	t.Cleanup(func() {
		for _, f := range frames {
			f.Close()
		}
	})
	return frames
}

func hand(wristX, wristY, pinch float64) []detector.HandLandmarks {
	return []detector.HandLandmarks{detector.HandAt(
		landmark.Point2D{X: wristX, Y: wristY},
		landmark.Point2D{X: 0.5 - pinch/2, Y: 0.5},
		landmark.Point2D{X: 0.5 + pinch/2, Y: 0.5},
		0.9,
	)}
}

type harness struct {
	camera   *capture.MockCamera
	detector *detector.MockDetector
	renderer *fakeRenderer
	preview  *fakePreview
	app      *App
}

func newHarness(t *testing.T, frames int, loop bool) *harness {
	t.Helper()
	h := &harness{
		camera:   capture.NewMockCamera(newFrames(t, frames), loop),
		detector: detector.NewMockDetector(),
		renderer: &fakeRenderer{},
		preview:  &fakePreview{},
	}
	h.app = New(Config{
		Camera:    h.camera,
		Detector:  h.detector,
		Extractor: detector.NewExtractor(h.detector, detector.WithMirror(false)),
		Renderer:  h.renderer,
		Preview:   h.preview,
		TargetFPS: 1000,
	})
	return h
}

func (h *harness) assertReleased(t *testing.T) {
	t.Helper()
	if h.camera.IsOpen() {
		t.Error("camera was not closed")
	}
	if !h.renderer.closed {
		t.Error("renderer was not closed")
	}
	if !h.preview.closed {
		t.Error("preview was not closed")
	}
	if !h.detector.Closed() {
		t.Error("detector was not closed")
	}
}

func TestApp_Run_SequenceScenario(t *testing.T) {
	h := newHarness(t, 2, false)
	h.detector.SetScript(
		hand(0.5, 0.5, 0),
		hand(1.0, 1.0, 0.2),
	)

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []rotation.State{{}, {Pitch: 9, Yaw: 9, Roll: 2}}
	if len(h.renderer.drawn) != len(want) {
		t.Fatalf("drew %d frames, want %d", len(h.renderer.drawn), len(want))
	}
	for i := range want {
		if !near(h.renderer.drawn[i], want[i]) {
			t.Errorf("frame %d drawn with %v, want %v", i+1, h.renderer.drawn[i], want[i])
		}
	}
	if !near(h.app.State(), want[1]) {
		t.Errorf("State() = %v, want %v", h.app.State(), want[1])
	}
	if h.renderer.swaps != 2 || h.preview.shown != 2 {
		t.Errorf("swaps = %d, shown = %d, want 2 each", h.renderer.swaps, h.preview.shown)
	}
	h.assertReleased(t)
}

func TestApp_Run_DecaysWhenHandLeaves(t *testing.T) {
	const absent = 10
	h := newHarness(t, 1+absent, false)
	h.detector.SetScript(hand(1.0, 0.0, 0.5))

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	drawn := h.renderer.drawn
	if len(drawn) != 1+absent {
		t.Fatalf("drew %d frames, want %d", len(drawn), 1+absent)
	}
	peak := drawn[0]
	if !near(peak, rotation.State{Pitch: -9, Yaw: 9, Roll: 5}) {
		t.Fatalf("first frame = %v, want (-9,9,5)", peak)
	}
	for n := 1; n <= absent; n++ {
		want := peak.Scale(math.Pow(rotation.Retention, float64(n)))
		if !near(drawn[n], want) {
			t.Errorf("absent frame %d = %v, want %v", n, drawn[n], want)
		}
	}
}

func TestApp_Run_CameraOpenFailure(t *testing.T) {
	h := newHarness(t, 1, false)
	boom := errors.New("no camera")
	h.camera.FailOpen(boom)

	err := h.app.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
	if len(h.renderer.drawn) != 0 {
		t.Errorf("loop ran %d frames after open failure", len(h.renderer.drawn))
	}
	h.assertReleased(t)
}

func TestApp_Run_QuitKey(t *testing.T) {
	h := newHarness(t, 1, true)
	h.preview.quitAt = 3

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.renderer.drawn) != 3 {
		t.Errorf("drew %d frames, want 3", len(h.renderer.drawn))
	}
	if h.renderer.swaps != 3 {
		t.Errorf("the quitting frame should still be presented, swaps = %d", h.renderer.swaps)
	}
	h.assertReleased(t)
}

func TestApp_Run_WindowClosed(t *testing.T) {
	h := newHarness(t, 1, true)
	h.renderer.closeAt = 4

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.renderer.drawn) != 4 {
		t.Errorf("drew %d frames, want 4", len(h.renderer.drawn))
	}
	if h.renderer.polls != 5 {
		t.Errorf("quit flag polled %d times, want once per iteration (5)", h.renderer.polls)
	}
}

func TestApp_Run_ContextCancelled(t *testing.T) {
	h := newHarness(t, 1, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.app.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.renderer.drawn) != 0 {
		t.Errorf("drew %d frames after cancellation", len(h.renderer.drawn))
	}
	h.assertReleased(t)
}

func TestApp_Run_DetectorErrorIsAbsentHand(t *testing.T) {
	h := newHarness(t, 3, false)
	h.detector.SetError(errors.New("service crashed"))

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(h.renderer.drawn) != 3 {
		t.Fatalf("drew %d frames, want 3", len(h.renderer.drawn))
	}
	for i, s := range h.renderer.drawn {
		if !near(s, rotation.State{}) {
			t.Errorf("frame %d = %v, want (0,0,0)", i, s)
		}
	}
}

func TestApp_Run_UncertainHandednessStillDrives(t *testing.T) {
	h := newHarness(t, 1, false)
	unsure := hand(1.0, 1.0, 0.2)
	unsure[0].HandednessScore = 0.6
	h.detector.SetHands(unsure)

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !near(h.app.State(), rotation.State{Pitch: 9, Yaw: 9, Roll: 2}) {
		t.Errorf("State() = %v, want (9,9,2)", h.app.State())
	}
}

func TestApp_Run_CustomSmoothing(t *testing.T) {
	h := newHarness(t, 1, false)
	h.app = New(Config{
		Camera:    h.camera,
		Detector:  h.detector,
		Extractor: detector.NewExtractor(h.detector, detector.WithMirror(false)),
		Renderer:  h.renderer,
		Smoothing: 0.5,
		TargetFPS: 1000,
	})
	h.detector.SetHands(hand(1.0, 0.5, 0))

	if err := h.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !near(h.app.State(), rotation.State{Yaw: 45}) {
		t.Errorf("State() = %v, want (0,45,0)", h.app.State())
	}
}

func TestApp_Run_MissingCollaborators(t *testing.T) {
	a := New(Config{})
	if err := a.Run(context.Background()); err == nil {
		t.Error("expected error without camera, detector and renderer")
	}
}

func TestNew_Defaults(t *testing.T) {
	a := New(Config{Detector: detector.NewMockDetector()})

	if a.config.TargetFPS != DefaultFPS {
		t.Errorf("TargetFPS = %d, want %d", a.config.TargetFPS, DefaultFPS)
	}
	if a.smoother.Retention() != rotation.Retention {
		t.Errorf("Retention = %v, want %v", a.smoother.Retention(), rotation.Retention)
	}
	if a.config.Extractor == nil {
		t.Fatal("expected default extractor")
	}
}
