package layout

import "image"

// Size is a measured width and height in pixels.
type Size struct {
	W int
	H int
}

// Stack is a title block above a subtitle block, centered as one unit.
// Title and Subtitle are the top-left corners of each block's ink box.
type Stack struct {
	Title        image.Point
	Subtitle     image.Point
	TitleRect    image.Rectangle
	SubtitleRect image.Rectangle
	TotalHeight  int
}

// StackCentered centers title+gap+subtitle vertically in rect and each block
// horizontally on its own. Halving floors, so oversized text starts at a
// negative offset instead of drifting right.
func StackCentered(rect image.Rectangle, title, subtitle Size, gap int) Stack {
	rect = Normalize(rect)
	if gap < 0 {
		gap = 0
	}
	total := title.H + gap + subtitle.H
	startY := rect.Min.Y + halfFloor(rect.Dy()-total)

	titleAt := image.Pt(rect.Min.X+halfFloor(rect.Dx()-title.W), startY)
	subtitleAt := image.Pt(rect.Min.X+halfFloor(rect.Dx()-subtitle.W), startY+title.H+gap)

	return Stack{
		Title:        titleAt,
		Subtitle:     subtitleAt,
		TitleRect:    image.Rectangle{Min: titleAt, Max: titleAt.Add(image.Pt(title.W, title.H))},
		SubtitleRect: image.Rectangle{Min: subtitleAt, Max: subtitleAt.Add(image.Pt(subtitle.W, subtitle.H))},
		TotalHeight:  total,
	}
}

// Spread returns the left edge of each glyph so that the run starts at startX
// and its last glyph ends at startX+target. The leftover space is shared evenly
// between neighbouring glyphs; a single glyph gets no spacing.
func Spread(widths []int, startX float64, target int) (positions []float64, spacing float64) {
	if len(widths) == 0 {
		return nil, 0
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if len(widths) > 1 {
		spacing = float64(target-sum) / float64(len(widths)-1)
	}
	positions = make([]float64, len(widths))
	x := startX
	for i, w := range widths {
		positions[i] = x
		x += float64(w) + spacing
	}
	return positions, spacing
}

// CenterIn returns a rectangle of size (widthPx,heightPx) centered in rect.
func CenterIn(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + halfFloor(rect.Dx()-widthPx)
	y := rect.Min.Y + halfFloor(rect.Dy()-heightPx)
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// Letterbox scales (srcW,srcH) to the largest size that fits rect while
// keeping the aspect ratio, and centers the result.
func Letterbox(rect image.Rectangle, srcW, srcH int) image.Rectangle {
	rect = Normalize(rect)
	if srcW <= 0 || srcH <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	scale := float64(rect.Dx()) / float64(srcW)
	if s := float64(rect.Dy()) / float64(srcH); s < scale {
		scale = s
	}
	return CenterIn(rect, int(float64(srcW)*scale), int(float64(srcH)*scale))
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// FitSquare returns the largest square that fits into rect, centered.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	return CenterIn(rect, size, size)
}

func halfFloor(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}
