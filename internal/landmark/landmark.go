// Package landmark holds the image-plane points a hand is reduced to each
// frame. It has no OpenCV dependency.
package landmark

import "math"

// Point2D is a landmark projected onto the image plane, normalized to [0,1].
type Point2D struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between p and q in normalized units.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Observation holds the three landmarks that drive the cube.
type Observation struct {
	Wrist    Point2D
	ThumbTip Point2D
	IndexTip Point2D
}
