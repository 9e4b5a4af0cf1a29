package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/rook-computer/assetgen/internal/render/layout"
)

// Renderer rasterizes stacked title/subtitle assets onto square canvases.
type Renderer struct {
	Fonts  *FontLoader
	Logger Logger
}

func NewRenderer(fonts *FontLoader) *Renderer {
	if fonts == nil {
		fonts = &FontLoader{}
	}
	return &Renderer{Fonts: fonts}
}

// Result is what Render produced besides the pixels.
type Result struct {
	Layout        layout.Stack
	TitleBox      BoundingBox
	SubtitleBox   BoundingBox
	SubtitleText  string
	LetterSpacing float64
	FontSource    string
	FontFallback  bool
}

// Render draws opts onto a new canvas. Only invalid options fail; a missing
// font degrades to a built-in face with the same layout math.
func (r *Renderer) Render(opts Options) (*image.RGBA, Result, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, Result{}, err
	}
	if r.Fonts.Logger == nil && r.Logger != nil {
		r.Fonts.Logger = r.Logger
	}

	titleFace := r.Fonts.Face(opts.TitleSize)
	defer titleFace.Close()
	subtitleFace := r.Fonts.Face(opts.SubtitleSize)
	defer subtitleFace.Close()

	subtitle := opts.subtitleText()
	titleBox := Measure(titleFace, opts.Title)
	subtitleBox := Measure(subtitleFace, subtitle)

	canvas := NewCanvas(opts.CanvasSize, opts.Background, opts.Transparent)
	stack := layout.StackCentered(canvas.Bounds(),
		layout.Size{W: titleBox.Width(), H: titleBox.Height()},
		layout.Size{W: subtitleBox.Width(), H: subtitleBox.Height()},
		opts.Gap)

	res := Result{
		TitleBox:     titleBox,
		SubtitleBox:  subtitleBox,
		SubtitleText: subtitle,
		FontSource:   titleFace.Source,
		FontFallback: titleFace.Fallback,
	}

	drawInk(canvas, titleFace, opts.Foreground, opts.Title, float64(stack.Title.X), stack.Title.Y, titleBox.Left, titleBox.Top)

	if opts.MatchTitleWidth {
		res.LetterSpacing = drawSpread(canvas, subtitleFace, opts.SubtitleColor, subtitle, stack, titleBox.Width(), subtitleBox.Top)
		stack.Subtitle.X = stack.Title.X
		stack.SubtitleRect.Min.X = stack.Title.X
		stack.SubtitleRect.Max.X = stack.Title.X + titleBox.Width()
	} else {
		drawInk(canvas, subtitleFace, opts.SubtitleColor, subtitle, float64(stack.Subtitle.X), stack.Subtitle.Y, subtitleBox.Left, subtitleBox.Top)
	}
	res.Layout = stack

	if r.Logger != nil {
		r.Logger.Infof("render", "title %dx%d at %v, subtitle %dx%d at %v, font=%s",
			titleBox.Width(), titleBox.Height(), stack.Title, subtitleBox.Width(), subtitleBox.Height(), stack.Subtitle, res.FontSource)
	}
	return canvas, res, nil
}

// RenderToFile renders opts and writes the canvas to path as PNG.
func (r *Renderer) RenderToFile(opts Options, path string) (Result, error) {
	canvas, res, err := r.Render(opts)
	if err != nil {
		return res, err
	}
	if err := WritePNG(path, canvas); err != nil {
		return res, err
	}
	return res, nil
}

// drawSpread draws each subtitle glyph so the run spans exactly width
// pixels starting at the title's left edge. All glyphs share the baseline
// of the full subtitle run.
func drawSpread(dst *image.RGBA, face Face, fg color.Color, text string, stack layout.Stack, width int, runTop int) float64 {
	runes := []rune(text)
	boxes := MeasureGlyphs(face, text)
	widths := make([]int, len(boxes))
	for i, b := range boxes {
		widths[i] = b.Width()
	}
	positions, spacing := layout.Spread(widths, float64(stack.Title.X), width)
	for i, ch := range runes {
		if widths[i] == 0 {
			continue
		}
		drawInk(dst, face, fg, string(ch), positions[i], stack.Subtitle.Y, boxes[i].Left, runTop)
	}
	return spacing
}

// NewCanvas returns a size x size canvas filled with bg, or fully
// transparent when transparent is set.
func NewCanvas(size int, bg color.Color, transparent bool) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := bg
	if transparent || fill == nil {
		fill = color.Transparent
	}
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)
	return canvas
}

// WritePNG encodes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
