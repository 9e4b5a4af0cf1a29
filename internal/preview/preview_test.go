package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeLetterboxes(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 0xFF, 0xFF
	}
	bg := color.RGBA{B: 0xFF, A: 0xFF}
	frame := Compose(src, image.Rect(0, 0, 320, 200), bg)

	assert.Equal(t, bg, frame.RGBAAt(10, 100), "left bar")
	assert.Equal(t, bg, frame.RGBAAt(310, 100), "right bar")
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, frame.RGBAAt(160, 100))
}

func TestComposeTransparentShowsBackground(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	bg := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	frame := Compose(src, image.Rect(0, 0, 10, 10), bg)
	assert.Equal(t, bg, frame.RGBAAt(5, 5))
}

func TestBlitForcesOpaque(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	frame.SetRGBA(1, 1, color.RGBA{R: 0x10, A: 0x20})
	dst := image.NewRGBA(image.Rect(0, 0, 2, 2))
	blit(dst, frame)
	assert.Equal(t, uint8(0xFF), dst.RGBAAt(1, 1).A)
	assert.Equal(t, uint8(0x10), dst.RGBAAt(1, 1).R)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultDevice, o.Device)
	assert.NotNil(t, o.Background)
	assert.NotNil(t, o.Logger)
}
