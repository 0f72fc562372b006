// Package detector provides hand landmark detection and the per-frame
// observation consumed by the rotation estimator.
package detector

import "github.com/ayusman/holocube/internal/landmark"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Connections lists the landmark pairs MediaPipe draws as the hand skeleton.
var Connections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {Wrist, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// Point3D represents a landmark position. X and Y are normalized to [0,1]
// relative to image width and height; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
// HandednessScore is the certainty of the left/right label, not a detection
// confidence; hands below the detection threshold never reach this type.
type HandLandmarks struct {
	Points          [NumLandmarks]Point3D `json:"points"`
	Handedness      string                `json:"handedness"` // "Left" or "Right"
	HandednessScore float64               `json:"score"`
}

func flat(p Point3D) landmark.Point2D {
	return landmark.Point2D{X: p.X, Y: p.Y}
}

// Observe picks the first detected hand and reduces it to an Observation.
// ok is false when no hand was detected.
func Observe(hands []HandLandmarks) (obs landmark.Observation, ok bool) {
	if len(hands) == 0 {
		return landmark.Observation{}, false
	}

	hand := hands[0]
	return landmark.Observation{
		Wrist:    flat(hand.Points[Wrist]),
		ThumbTip: flat(hand.Points[ThumbTip]),
		IndexTip: flat(hand.Points[IndexTip]),
	}, true
}
