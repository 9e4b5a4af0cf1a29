package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/skip2/go-qrcode"

	"github.com/rook-computer/assetgen/internal/render/layout"
)

const defaultQRCodeSizePx = 256

// QROptions describes a QR badge asset.
type QROptions struct {
	Payload     string
	Background  color.Color
	Foreground  color.Color
	Transparent bool
	// Margin is the quiet zone around the code, in canvas pixels.
	Margin     int
	CanvasSize int
}

// GenerateQRCodeImage returns a QR code image for the given payload.
// If payload is empty, it returns (nil, nil).
func GenerateQRCodeImage(payload string, sizePx int, fg, bg color.Color) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	qrCode, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	qrCode.DisableBorder = true
	if fg != nil {
		qrCode.ForegroundColor = fg
	}
	if bg != nil {
		qrCode.BackgroundColor = bg
	}

	return qrCode.Image(sizePx), nil
}

// RenderQRCode draws the payload's QR code centered in a square canvas.
func RenderQRCode(opts QROptions) (*image.RGBA, error) {
	if opts.Payload == "" {
		return nil, errors.New("qrcode: empty payload")
	}
	if opts.CanvasSize <= 0 {
		opts.CanvasSize = CanvasSize
	}
	if opts.Foreground == nil {
		opts.Foreground = Foreground
	}
	if opts.Background == nil {
		opts.Background = Background
	}

	canvas := NewCanvas(opts.CanvasSize, opts.Background, opts.Transparent)
	area := layout.FitSquare(layout.Inset(canvas.Bounds(), opts.Margin))

	bg := opts.Background
	if opts.Transparent {
		bg = color.Transparent
	}
	code, err := GenerateQRCodeImage(opts.Payload, area.Dx(), opts.Foreground, bg)
	if err != nil {
		return nil, err
	}
	dst := layout.CenterIn(canvas.Bounds(), code.Bounds().Dx(), code.Bounds().Dy())
	draw.Draw(canvas, dst, code, code.Bounds().Min, draw.Over)
	return canvas, nil
}
