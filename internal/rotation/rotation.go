// Package rotation maps hand observations to cube rotation angles and
// smooths them from frame to frame.
package rotation

import (
	"fmt"
	"math"

	"github.com/ayusman/holocube/internal/landmark"
)

// Mapping constants.
const (
	// AngleScale converts a wrist offset from the frame center into degrees.
	AngleScale = 180.0
	// PinchScale converts the thumb to index distance into degrees.
	PinchScale = 100.0
	// Retention is the weight given to the previous state when smoothing.
	Retention = 0.9
	// Gain is the weight given to the new raw angles, 1 - Retention.
	Gain = 0.1
)

// State is the cube orientation in degrees. The renderer applies Pitch,
// Yaw and Roll as rotations about X, Y and Z, in that order.
type State struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// String implements fmt.Stringer.
func (s State) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", s.Pitch, s.Yaw, s.Roll)
}

// Scale multiplies every axis by k.
func (s State) Scale(k float64) State {
	return State{Pitch: s.Pitch * k, Yaw: s.Yaw * k, Roll: s.Roll * k}
}

// Add returns the per-axis sum of s and o.
func (s State) Add(o State) State {
	return State{Pitch: s.Pitch + o.Pitch, Yaw: s.Yaw + o.Yaw, Roll: s.Roll + o.Roll}
}

// Finite reports whether every axis is a finite number.
func (s State) Finite() bool {
	for _, v := range [...]float64{s.Pitch, s.Yaw, s.Roll} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Raw maps a single observation to unsmoothed angles. An absent
// observation maps to zero on every axis, and so does one carrying
// non-finite coordinates. No axis is clamped.
func Raw(obs landmark.Observation, ok bool) State {
	if !ok {
		return State{}
	}
	raw := State{
		Pitch: (obs.Wrist.Y - 0.5) * AngleScale,
		Yaw:   (obs.Wrist.X - 0.5) * AngleScale,
		Roll:  obs.ThumbTip.Distance(obs.IndexTip) * PinchScale,
	}
	if !raw.Finite() {
		return State{}
	}
	return raw
}

// Smooth returns 0.9*prev + 0.1*raw, per axis.
func Smooth(prev, raw State) State {
	return prev.Scale(Retention).Add(raw.Scale(Gain))
}

// Estimate returns the next state given the previous one and this frame's
// observation.
func Estimate(prev State, obs landmark.Observation, ok bool) State {
	return Smooth(prev, Raw(obs, ok))
}

// Smoother is a first-order exponential moving average with a configurable
// retention factor in [0,1). The zero value always yields zero; use
// NewSmoother.
type Smoother struct {
	retention float64
	gain      float64
}

// NewSmoother returns a Smoother keeping retention of the previous state.
// The gain is rounded to nine decimals so that decimal settings such as 0.9
// weigh the raw angles by exactly 0.1.
func NewSmoother(retention float64) Smoother {
	return Smoother{
		retention: retention,
		gain:      math.Round((1-retention)*1e9) / 1e9,
	}
}

// Retention returns the weight given to the previous state.
func (s Smoother) Retention() float64 {
	return s.retention
}

// Smooth returns retention*prev + (1-retention)*raw, per axis.
func (s Smoother) Smooth(prev, raw State) State {
	return prev.Scale(s.retention).Add(raw.Scale(s.gain))
}

// Estimate is Estimate with this smoother's retention factor.
func (s Smoother) Estimate(prev State, obs landmark.Observation, ok bool) State {
	return s.Smooth(prev, Raw(obs, ok))
}
