// Package render draws the hologram cube with immediate-mode OpenGL.
package render

import "github.com/go-gl/mathgl/mgl32"

// CubeVertices are the corners of a cube of side 2 centered on the origin.
var CubeVertices = [8]mgl32.Vec3{
	{1, 1, -1}, {1, -1, -1}, {-1, -1, -1}, {-1, 1, -1},
	{1, 1, 1}, {1, -1, 1}, {-1, -1, 1}, {-1, 1, 1},
}

// CubeEdges index into CubeVertices: back face, front face, then the four
// edges joining them.
var CubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
