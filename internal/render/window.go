package render

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/ayusman/holocube/internal/rotation"
)

// Window is the GLFW window the cube is drawn into. All methods must be
// called from the goroutine that created it.
type Window struct {
	scene  Scene
	window *glfw.Window
	closed bool
}

// NewWindow initializes GLFW and OpenGL and opens a fixed-size window.
// It must be called on the main OS thread; cmd/holocube locks it in init.
func NewWindow(scene Scene, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)

	window, err := glfw.CreateWindow(scene.Width, scene.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initialize opengl: %w", err)
	}

	// Frame pacing is done by the caller.
	glfw.SwapInterval(0)

	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)

	projection := scene.Projection()
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&projection[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	return &Window{scene: scene, window: window}, nil
}

// Draw clears the back buffer and draws the cube rotated by state.
func (w *Window) Draw(state rotation.State) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	c := w.scene.Color
	gl.Begin(gl.LINES)
	for _, seg := range w.scene.Segments(state) {
		for _, v := range seg {
			gl.Color3f(c[0], c[1], c[2])
			gl.Vertex3f(v[0], v[1], v[2])
		}
	}
	gl.End()
}

// Swap presents the back buffer.
func (w *Window) Swap() {
	w.window.SwapBuffers()
}

// ShouldClose processes pending window events and reports whether the user
// closed the window or pressed Q or Escape.
func (w *Window) ShouldClose() bool {
	glfw.PollEvents()
	return w.window.ShouldClose() ||
		w.window.GetKey(glfw.KeyQ) == glfw.Press ||
		w.window.GetKey(glfw.KeyEscape) == glfw.Press
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.window.Destroy()
	glfw.Terminate()
	return nil
}
