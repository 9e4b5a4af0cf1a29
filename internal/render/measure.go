package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// BoundingBox is the ink box of a glyph run, relative to the pen origin on
// the baseline. Top is negative for glyphs that rise above the baseline.
type BoundingBox struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

func (b BoundingBox) Width() int  { return b.Right - b.Left }
func (b BoundingBox) Height() int { return b.Bottom - b.Top }

// Measure returns the ink bounding box of text set in face.
// Whitespace-only text measures as an empty box.
func Measure(face font.Face, text string) BoundingBox {
	bounds, _ := font.BoundString(face, text)
	if bounds.Empty() {
		return BoundingBox{}
	}
	return BoundingBox{
		Left:   bounds.Min.X.Floor(),
		Top:    bounds.Min.Y.Floor(),
		Right:  bounds.Max.X.Ceil(),
		Bottom: bounds.Max.Y.Ceil(),
	}
}

// MeasureGlyphs measures each rune of text on its own.
func MeasureGlyphs(face font.Face, text string) []BoundingBox {
	runes := []rune(text)
	boxes := make([]BoundingBox, len(runes))
	for i, r := range runes {
		boxes[i] = Measure(face, string(r))
	}
	return boxes
}

// drawInk draws text so that its ink box starts at (x, top). left is the
// ink offset of text from the pen; baselineTop is the Top of the whole run so
// glyphs drawn one at a time share a baseline.
func drawInk(dst *image.RGBA, face font.Face, fg color.Color, text string, x float64, top int, left, baselineTop int) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	drawer.Dot = fixed.Point26_6{
		X: fixed.Int26_6(math.Round((x - float64(left)) * 64)),
		Y: fixed.I(top - baselineTop),
	}
	drawer.DrawString(text)
}
