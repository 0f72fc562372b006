package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// DefaultPreviewTitle is the title of the camera feed window.
const DefaultPreviewTitle = "Hand Rotation Control"

// QuitKey closes the preview when pressed while it has focus.
const QuitKey = 'q'

// Preview shows camera frames in a HighGUI window.
type Preview struct {
	window *gocv.Window
	once   sync.Once
}

// NewPreview opens a preview window with the given title.
func NewPreview(title string) *Preview {
	return &Preview{window: gocv.NewWindow(title)}
}

// Show displays frame and polls the keyboard for one millisecond.
// It reports true when the quit key was pressed.
func (p *Preview) Show(frame *gocv.Mat) bool {
	if frame != nil && !frame.Empty() {
		p.window.IMShow(*frame)
	}
	return IsQuitKey(p.window.WaitKey(1))
}

// Close destroys the window. It is safe to call more than once.
func (p *Preview) Close() error {
	var err error
	p.once.Do(func() {
		err = p.window.Close()
	})
	return err
}

// IsQuitKey reports whether a WaitKey result is the quit key.
func IsQuitKey(key int) bool {
	return key >= 0 && key&0xFF == QuitKey
}
