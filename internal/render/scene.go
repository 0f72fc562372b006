package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ayusman/holocube/internal/rotation"
)

// Default view parameters.
const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultFovY     = 45.0
	DefaultNear     = 0.1
	DefaultFar      = 50.0
	DefaultDistance = 5.0
	DefaultTitle    = "Hologram Cube"
)

// NeonBlue is the default line color.
var NeonBlue = mgl32.Vec3{0, 1, 1}

// Scene holds the fixed camera and the cube's line color.
type Scene struct {
	Width    int
	Height   int
	FovY     float32 // degrees
	Near     float32
	Far      float32
	Distance float32 // camera distance from the cube along -Z
	Color    mgl32.Vec3
}

// DefaultScene returns the 800x600 view looking at the cube from 5 units away.
func DefaultScene() Scene {
	return Scene{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FovY:     DefaultFovY,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Distance: DefaultDistance,
		Color:    NeonBlue,
	}
}

// Aspect returns width over height.
func (s Scene) Aspect() float32 {
	return float32(s.Width) / float32(s.Height)
}

// Projection returns the perspective matrix.
func (s Scene) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(s.FovY), s.Aspect(), s.Near, s.Far)
}

// View moves the world away from the camera.
func (s Scene) View() mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -s.Distance)
}

// Model rotates the cube about X, then Y, then Z by the state's angles.
// Vertices are transformed as Rx * Ry * Rz * v, the same composition as
// successive glRotatef calls.
func Model(state rotation.State) mgl32.Mat4 {
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(float32(state.Pitch)))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(float32(state.Yaw)))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(state.Roll)))
	return rx.Mul4(ry).Mul4(rz)
}

// ModelView combines View and Model.
func (s Scene) ModelView(state rotation.State) mgl32.Mat4 {
	return s.View().Mul4(Model(state))
}

// Segments returns the cube edges in eye space for the given state.
func (s Scene) Segments(state rotation.State) [len(CubeEdges)][2]mgl32.Vec3 {
	mv := s.ModelView(state)

	var out [len(CubeEdges)][2]mgl32.Vec3
	for i, e := range CubeEdges {
		for j, idx := range e {
			out[i][j] = mgl32.TransformCoordinate(CubeVertices[idx], mv)
		}
	}
	return out
}
