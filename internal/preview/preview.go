// Package preview shows a generated asset on the Linux framebuffer so it
// can be checked on a device without a desktop.
package preview

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/assetgen/internal/render/layout"
)

// ErrUnsupported is returned by Show on platforms without a framebuffer.
var ErrUnsupported = errors.New("framebuffer preview is only supported on linux")

const DefaultDevice = "/dev/fb0"

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type Options struct {
	Device string
	// Hold is how long the frame stays up; zero waits for the context.
	Hold time.Duration
	// Background fills the letterbox bars and shows through transparency.
	Background color.Color
	Logger     Logger
}

func (o Options) withDefaults() Options {
	if o.Device == "" {
		o.Device = DefaultDevice
	}
	if o.Background == nil {
		o.Background = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	}
	if o.Logger == nil {
		o.Logger = noopLogger{}
	}
	return o
}

// Compose letterboxes img into an opaque frame of the given bounds.
func Compose(img image.Image, bounds image.Rectangle, bg color.Color) *image.RGBA {
	frame := image.NewRGBA(bounds)
	draw.Draw(frame, bounds, &image.Uniform{C: bg}, image.Point{}, draw.Src)
	src := img.Bounds()
	dst := layout.Letterbox(bounds, src.Dx(), src.Dy())
	if dst.Empty() {
		return frame
	}
	xdraw.BiLinear.Scale(frame, dst, img, src, xdraw.Over, nil)
	return frame
}

// blit copies frame onto dst pixel by pixel, forcing full opacity.
func blit(dst draw.Image, frame *image.RGBA) {
	b := dst.Bounds().Intersect(frame.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := frame.RGBAAt(x, y)
			px.A = 0xFF
			dst.Set(x, y, px)
		}
	}
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
