package detector

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Overlay colors, matching MediaPipe's default hand drawing style.
var (
	LandmarkColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	ConnectionColor = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// pixel maps a normalized landmark onto img.
func pixel(p Point3D, img *gocv.Mat) image.Point {
	return image.Pt(int(p.X*float64(img.Cols())), int(p.Y*float64(img.Rows())))
}

// DrawLandmarks draws the hand skeleton and its 21 landmarks onto img.
func DrawLandmarks(img *gocv.Mat, hand HandLandmarks) {
	if img == nil || img.Empty() {
		return
	}

	for _, c := range Connections {
		gocv.Line(img, pixel(hand.Points[c[0]], img), pixel(hand.Points[c[1]], img), ConnectionColor, 2)
	}
	for _, p := range hand.Points {
		gocv.Circle(img, pixel(p, img), 4, LandmarkColor, -1)
	}
}
