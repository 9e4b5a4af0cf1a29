package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

func embeddedRenderer() *Renderer {
	return NewRenderer(NewFontLoader(nil, gobold.TTF))
}

// inkBounds returns the smallest rectangle holding every pixel in area that
// differs from bg.
func inkBounds(img *image.RGBA, area image.Rectangle, bg color.RGBA) image.Rectangle {
	var out image.Rectangle
	area = area.Intersect(img.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if img.RGBAAt(x, y) == bg {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if out.Empty() {
				out = px
			} else {
				out = out.Union(px)
			}
		}
	}
	return out
}

func TestRenderCentersStackedBlocks(t *testing.T) {
	canvas, res, err := embeddedRenderer().Render(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1024, 1024), canvas.Bounds())

	assert.Equal(t, "LAND & PROPERTIES", res.SubtitleText)
	assert.Equal(t, SourceEmbedded, res.FontSource)

	st := res.Layout
	assert.InDelta(t, 512, float64(st.Title.X)+float64(res.TitleBox.Width())/2, 0.5)
	assert.InDelta(t, 512, float64(st.Subtitle.X)+float64(res.SubtitleBox.Width())/2, 0.5)
	assert.GreaterOrEqual(t, st.Title.Y, 0)
	assert.Less(t, st.TitleRect.Max.Y, st.SubtitleRect.Min.Y)
	assert.Equal(t, DefaultGap, st.SubtitleRect.Min.Y-st.TitleRect.Max.Y)

	black := color.RGBA{A: 0xFF}
	assert.Equal(t, black, canvas.RGBAAt(0, 0))

	ink := inkBounds(canvas, canvas.Bounds(), black)
	require.False(t, ink.Empty())
	assert.InDelta(t, st.TitleRect.Min.Y, ink.Min.Y, 1)
	assert.InDelta(t, st.SubtitleRect.Max.Y, ink.Max.Y, 1)

	titleInk := inkBounds(canvas, st.TitleRect.Inset(-2), black)
	assert.InDelta(t, st.TitleRect.Min.X, titleInk.Min.X, 1)
	assert.InDelta(t, st.TitleRect.Max.X, titleInk.Max.X, 1)
}

func TestRenderTransparentBackground(t *testing.T) {
	opts := DefaultOptions()
	opts.Transparent = true
	canvas, _, err := embeddedRenderer().Render(opts)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{}, canvas.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{}, canvas.RGBAAt(1023, 1023))
}

func TestRenderMatchTitleWidth(t *testing.T) {
	opts := DefaultOptions()
	opts.Subtitle = "LAND & PROPERTIES"
	opts.SubtitleSize = 32
	opts.Gap = 40
	opts.MatchTitleWidth = true

	canvas, res, err := embeddedRenderer().Render(opts)
	require.NoError(t, err)

	st := res.Layout
	assert.Equal(t, st.Title.X, st.Subtitle.X)
	assert.Equal(t, st.TitleRect.Dx(), st.SubtitleRect.Dx())
	assert.Greater(t, res.LetterSpacing, 0.0)

	row := image.Rect(0, st.SubtitleRect.Min.Y-2, 1024, st.SubtitleRect.Max.Y+2)
	ink := inkBounds(canvas, row, color.RGBA{A: 0xFF})
	assert.InDelta(t, st.TitleRect.Min.X, ink.Min.X, 2)
	assert.InDelta(t, st.TitleRect.Max.X, ink.Max.X, 2)
}

func TestRenderSubtitleColor(t *testing.T) {
	opts := DefaultOptions()
	opts.TitleSize = 140
	opts.SubtitleSize = 28
	opts.Gap = 40
	opts.SubtitleColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 180}

	canvas, res, err := embeddedRenderer().Render(opts)
	require.NoError(t, err)

	maxRed := func(area image.Rectangle) uint8 {
		var m uint8
		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				if r := canvas.RGBAAt(x, y).R; r > m {
					m = r
				}
			}
		}
		return m
	}
	assert.Equal(t, uint8(0xFF), maxRed(res.Layout.TitleRect))
	sub := maxRed(res.Layout.SubtitleRect)
	assert.Greater(t, sub, uint8(0))
	assert.LessOrEqual(t, sub, uint8(181))
}

func TestRenderUppercaseUsesFullCaseMapping(t *testing.T) {
	opts := DefaultOptions()
	opts.Subtitle = "Straße"
	_, res, err := embeddedRenderer().Render(opts)
	require.NoError(t, err)
	assert.Equal(t, "STRASSE", res.SubtitleText)

	opts.UppercaseSubtitle = false
	_, res, err = embeddedRenderer().Render(opts)
	require.NoError(t, err)
	assert.Equal(t, "Straße", res.SubtitleText)
}

func TestRenderFallsBackToBasicFont(t *testing.T) {
	r := NewRenderer(NewFontLoader([]string{filepath.Join(t.TempDir(), "missing.ttf")}, nil))
	canvas, res, err := r.Render(DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, canvas)

	assert.Equal(t, SourceBasicFont, res.FontSource)
	assert.True(t, res.FontFallback)
	assert.Positive(t, res.TitleBox.Width())
	assert.InDelta(t, 512, float64(res.Layout.Title.X)+float64(res.TitleBox.Width())/2, 0.5)
}

func TestRenderRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"empty title", func(o *Options) { o.Title = " " }},
		{"empty subtitle", func(o *Options) { o.Subtitle = "" }},
		{"zero title size", func(o *Options) { o.TitleSize = 0 }},
		{"negative subtitle size", func(o *Options) { o.SubtitleSize = -4 }},
		{"negative gap", func(o *Options) { o.Gap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, _, err := embeddedRenderer().Render(opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	_, err := embeddedRenderer().RenderToFile(DefaultOptions(), path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1024, 1024), img.Bounds())
}

func TestRenderToFileWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "icon.png")
	_, err := embeddedRenderer().RenderToFile(DefaultOptions(), path)
	assert.Error(t, err)
}

func TestRenderCustomCanvasSize(t *testing.T) {
	opts := DefaultOptions()
	opts.CanvasSize = 512
	opts.TitleSize = 80
	opts.SubtitleSize = 20
	canvas, res, err := embeddedRenderer().Render(opts)
	require.NoError(t, err)
	assert.Equal(t, 512, canvas.Bounds().Dx())
	assert.InDelta(t, 256, float64(res.Layout.Title.X)+float64(res.TitleBox.Width())/2, 0.5)
}
