package app

import (
	"context"
	"errors"
	"time"

	"github.com/ayusman/holocube/internal/capture"
)

// statsInterval is how often loop statistics are logged at debug level.
const statsInterval = time.Second

// stats counts frames for the periodic debug log.
type stats struct {
	total  int
	frames int
	hands  int
	since  time.Time
}

// loop is the frame-locked render loop:
//
//  1. poll the quit flag (context, window close, quit key)
//  2. read one frame; a failed read ends the stream
//  3. extract the hand observation
//  4. smooth it into the rotation state
//  5. draw the cube, show the preview, present
//  6. wait for the next tick of the frame cap
func (a *App) loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(a.config.TargetFPS))
	defer ticker.Stop()

	a.stats.since = time.Now()
	quit := false

	for {
		if quit || ctx.Err() != nil || a.config.Renderer.ShouldClose() {
			return
		}

		frame, err := a.config.Camera.ReadFrame()
		if err != nil {
			if errors.Is(err, capture.ErrEndOfStream) {
				a.log.Info("camera stream ended")
			} else {
				a.log.Warn("camera read failed, stopping", "error", err)
			}
			return
		}

		obs, ok, err := a.config.Extractor.Extract(frame)
		if err != nil {
			a.log.Warn("hand detection failed", "error", err)
			ok = false
		}

		a.state = a.smoother.Estimate(a.state, obs, ok)
		a.record(ok)

		a.config.Renderer.Draw(a.state)
		if a.config.Preview != nil {
			quit = a.config.Preview.Show(frame)
		}
		frame.Close()
		a.config.Renderer.Swap()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// record updates the counters and logs them once per statsInterval.
func (a *App) record(handSeen bool) {
	a.stats.total++
	a.stats.frames++
	if handSeen {
		a.stats.hands++
	}

	elapsed := time.Since(a.stats.since)
	if elapsed < statsInterval {
		return
	}

	a.log.Debug("loop stats",
		"fps", float64(a.stats.frames)/elapsed.Seconds(),
		"hand_frames", a.stats.hands,
		"state", a.state.String(),
	)
	a.stats.frames = 0
	a.stats.hands = 0
	a.stats.since = time.Now()
}
