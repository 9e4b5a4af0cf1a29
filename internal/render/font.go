package render

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Logger is the component-tagged logger used across assetgen.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// Source names reported for faces that did not come from a file.
const (
	SourceEmbedded  = "embedded"
	SourceBasicFont = "basicfont"
)

// Face is a font face together with where it came from.
// Fallback is set when none of the configured font files could be used.
type Face struct {
	font.Face
	Source   string
	Fallback bool
}

// FontLoader resolves a scalable font once and hands out faces at any size.
// Paths are tried in order, then Embedded, then basicfont.Face7x13.
// Loading never fails; problems are logged and the next candidate is tried.
type FontLoader struct {
	Paths    []string
	Embedded []byte
	Logger   Logger

	resolved bool
	newFace  func(size float64) (font.Face, error)
	source   string
	fallback bool
}

func NewFontLoader(paths []string, embedded []byte) *FontLoader {
	return &FontLoader{Paths: paths, Embedded: embedded}
}

// Face returns a face at size pixels. A face that cannot be built at that
// size degrades to basicfont, which ignores size.
func (l *FontLoader) Face(size float64) Face {
	l.resolve()
	if l.newFace != nil {
		face, err := l.newFace(size)
		if err == nil {
			return Face{Face: face, Source: l.source, Fallback: l.fallback}
		}
		l.logger().Errorf("font", "face %s at %.1fpx failed, using basicfont: %v", l.source, size, err)
	}
	return Face{Face: basicfont.Face7x13, Source: SourceBasicFont, Fallback: true}
}

func (l *FontLoader) resolve() {
	if l.resolved {
		return
	}
	l.resolved = true
	log := l.logger()

	for _, path := range l.Paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Infof("font", "skip %s: %v", path, err)
			continue
		}
		newFace, err := parseFont(data)
		if err != nil {
			log.Errorf("font", "parse %s failed: %v", path, err)
			continue
		}
		l.newFace, l.source = newFace, path
		log.Infof("font", "loaded %s", path)
		return
	}

	l.fallback = true
	if len(l.Embedded) > 0 {
		newFace, err := parseFont(l.Embedded)
		if err == nil {
			l.newFace, l.source = newFace, SourceEmbedded
			log.Errorf("font", "no font file usable, using embedded font")
			return
		}
		log.Errorf("font", "embedded font parse failed: %v", err)
	}
	log.Errorf("font", "no scalable font available, using basicfont")
}

func (l *FontLoader) logger() Logger {
	if l.Logger == nil {
		return noopLogger{}
	}
	return l.Logger
}

// parseFont prefers the sfnt-based opentype parser and retries with
// freetype's truetype parser, which accepts some older TrueType tables.
func parseFont(data []byte) (func(size float64) (font.Face, error), error) {
	otFont, otErr := opentype.Parse(data)
	if otErr == nil {
		return func(size float64) (font.Face, error) {
			if size <= 0 {
				return nil, fmt.Errorf("invalid font size %.1f", size)
			}
			return opentype.NewFace(otFont, &opentype.FaceOptions{Size: size, DPI: DPI, Hinting: font.HintingFull})
		}, nil
	}
	ttFont, ttErr := truetype.Parse(data)
	if ttErr != nil {
		return nil, errors.Join(fmt.Errorf("opentype: %w", otErr), fmt.Errorf("truetype: %w", ttErr))
	}
	return func(size float64) (font.Face, error) {
		if size <= 0 {
			return nil, fmt.Errorf("invalid font size %.1f", size)
		}
		return truetype.NewFace(ttFont, &truetype.Options{Size: size, DPI: DPI, Hinting: font.HintingFull}), nil
	}, nil
}
