package render

import "image/color"

// Defaults shared by every text asset.
const (
	// CanvasSize is the edge of the square output canvas.
	CanvasSize = 1024

	// DefaultGap is the vertical distance between title and subtitle blocks.
	DefaultGap = 30

	// DPI at which point sizes map 1:1 to pixels.
	DPI = 72
)

var (
	Foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Background = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)
