package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("invalid render options")

// Options fully describes one title/subtitle asset.
type Options struct {
	Title        string
	Subtitle     string
	TitleSize    float64
	SubtitleSize float64
	Gap          int

	Background color.Color
	Foreground color.Color
	// SubtitleColor overrides Foreground for the subtitle when set.
	SubtitleColor color.Color
	// Transparent clears the canvas to (0,0,0,0) and ignores Background.
	Transparent bool

	UppercaseSubtitle bool
	// MatchTitleWidth letter-spaces the subtitle so it spans the title's width.
	MatchTitleWidth bool

	CanvasSize int
}

// DefaultOptions is the launcher icon: white "MAHTO" over a black square.
func DefaultOptions() Options {
	return Options{
		Title:             "MAHTO",
		Subtitle:          "Land & Properties",
		TitleSize:         160,
		SubtitleSize:      40,
		Gap:               DefaultGap,
		Background:        Background,
		Foreground:        Foreground,
		UppercaseSubtitle: true,
		CanvasSize:        CanvasSize,
	}
}

func (o Options) Validate() error {
	switch {
	case strings.TrimSpace(o.Title) == "":
		return fmt.Errorf("%w: empty title", ErrInvalidOptions)
	case strings.TrimSpace(o.Subtitle) == "":
		return fmt.Errorf("%w: empty subtitle", ErrInvalidOptions)
	case o.TitleSize <= 0:
		return fmt.Errorf("%w: title size %.1f", ErrInvalidOptions, o.TitleSize)
	case o.SubtitleSize <= 0:
		return fmt.Errorf("%w: subtitle size %.1f", ErrInvalidOptions, o.SubtitleSize)
	case o.Gap < 0:
		return fmt.Errorf("%w: negative gap %d", ErrInvalidOptions, o.Gap)
	case o.CanvasSize < 0:
		return fmt.Errorf("%w: canvas size %d", ErrInvalidOptions, o.CanvasSize)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.CanvasSize == 0 {
		o.CanvasSize = CanvasSize
	}
	if o.Background == nil {
		o.Background = Background
	}
	if o.Foreground == nil {
		o.Foreground = Foreground
	}
	if o.SubtitleColor == nil {
		o.SubtitleColor = o.Foreground
	}
	return o
}

// subtitleText is the subtitle as it is measured and drawn.
func (o Options) subtitleText() string {
	if !o.UppercaseSubtitle {
		return o.Subtitle
	}
	return cases.Upper(language.Und).String(o.Subtitle)
}
