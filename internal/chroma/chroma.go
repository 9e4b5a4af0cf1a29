// Package chroma punches a flat background out of an image by comparing
// every pixel against the top-left corner.
//
// Classification is pointwise: any pixel close enough to the corner colour
// is cleared, including isolated foreground pixels that happen to match.
package chroma

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"

	"github.com/disintegration/imaging"

	"github.com/rook-computer/assetgen/internal/report"
)

// DefaultThreshold is the per-channel distance below which a pixel counts
// as background.
const DefaultThreshold = 30

// ErrNotFound is returned when the image to process does not exist.
var ErrNotFound = errors.New("image not found")

// ErrNoAlpha is returned for targets whose file format cannot store
// transparency, such as JPEG.
var ErrNoAlpha = errors.New("format cannot store transparency")

// Cleared is written over every background pixel.
var Cleared = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x00}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// IsBackground reports whether px is within threshold of ref on each of R,
// G and B. Alpha is ignored. The comparison is strict.
func IsBackground(px, ref color.NRGBA, threshold int) bool {
	return absDiff(px.R, ref.R) < threshold &&
		absDiff(px.G, ref.G) < threshold &&
		absDiff(px.B, ref.B) < threshold
}

// KeyOut clears every background pixel of img in place and returns how many
// pixels it cleared. An image whose reference pixel is already fully
// transparent has been keyed before and is left untouched.
func KeyOut(img *image.NRGBA, threshold int) int {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	ref := img.NRGBAAt(b.Min.X, b.Min.Y)
	if ref.A == 0 {
		return 0
	}
	cleared := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if IsBackground(img.NRGBAAt(x, y), ref, threshold) {
				img.SetNRGBA(x, y, Cleared)
				cleared++
			}
		}
	}
	return cleared
}

// Load decodes the image at path into a non-premultiplied RGBA buffer.
func Load(path string) (*image.NRGBA, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, err
	}
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return imaging.Clone(src), nil
}

// RemoveBackground keys out the background of the image at path and
// overwrites it, keeping the format implied by the file extension. Only
// formats with an alpha channel are accepted. The file is not rewritten when
// no pixel changed.
func RemoveBackground(path string, threshold int) (int, error) {
	img, err := Load(path)
	if err != nil {
		return 0, err
	}
	if err := checkAlpha(path); err != nil {
		return 0, err
	}
	cleared := KeyOut(img, threshold)
	if cleared == 0 {
		return 0, nil
	}
	if err := imaging.Save(img, path); err != nil {
		return cleared, fmt.Errorf("save %s: %w", path, err)
	}
	return cleared, nil
}

// RemoveAll runs RemoveBackground over paths one at a time. A missing file is
// skipped; any other error fails that file only.
func RemoveAll(paths []string, threshold int, logger Logger) *report.Report {
	rep := report.New()
	for _, path := range paths {
		cleared, err := RemoveBackground(path, threshold)
		switch {
		case errors.Is(err, ErrNotFound):
			if logger != nil {
				logger.Infof("chroma", "file not found: %s", path)
			}
			rep.Skip(path, "not found")
		case err != nil:
			if logger != nil {
				logger.Errorf("chroma", "%s: %v", path, err)
			}
			rep.Fail(path, err)
		default:
			if logger != nil {
				logger.Infof("chroma", "background removed for %s (%d px)", path, cleared)
			}
			rep.OK(path, fmt.Sprintf("%d px cleared", cleared))
		}
	}
	return rep
}

func checkAlpha(path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	switch format {
	case imaging.PNG, imaging.TIFF:
		return nil
	}
	return fmt.Errorf("%w: %s is %s", ErrNoAlpha, path, format)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
