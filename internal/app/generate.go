package app

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/rook-computer/assetgen/internal/config"
	"github.com/rook-computer/assetgen/internal/hook"
	"github.com/rook-computer/assetgen/internal/render"
)

// TextOptions converts a resolved text asset into render options.
func TextOptions(a config.Asset) (render.Options, error) {
	bg, err := config.ParseColor(a.Background)
	if err != nil {
		return render.Options{}, err
	}
	fg, err := config.ParseColor(a.Foreground)
	if err != nil {
		return render.Options{}, err
	}
	opts := render.Options{
		Title:             a.Title,
		Subtitle:          a.Subtitle,
		TitleSize:         a.TitleSize,
		SubtitleSize:      a.SubtitleSize,
		Gap:               config.Int(a.Gap),
		Background:        bg,
		Foreground:        fg,
		Transparent:       config.Bool(a.Transparent),
		UppercaseSubtitle: config.Bool(a.UppercaseSubtitle),
		MatchTitleWidth:   config.Bool(a.MatchTitleWidth),
		CanvasSize:        a.CanvasSize,
	}
	if a.SubtitleColor != "" {
		sc, err := config.ParseColor(a.SubtitleColor)
		if err != nil {
			return render.Options{}, err
		}
		opts.SubtitleColor = sc
	}
	return opts, nil
}

// QROptions converts a resolved qrcode asset into render options.
func QROptions(a config.Asset) (render.QROptions, error) {
	bg, err := config.ParseColor(a.Background)
	if err != nil {
		return render.QROptions{}, err
	}
	fg, err := config.ParseColor(a.Foreground)
	if err != nil {
		return render.QROptions{}, err
	}
	return render.QROptions{
		Payload:     a.Payload,
		Background:  bg,
		Foreground:  fg,
		Transparent: config.Bool(a.Transparent),
		Margin:      a.Margin,
		CanvasSize:  a.CanvasSize,
	}, nil
}

// generate renders one asset to path and returns a short detail string.
func (app *App) generate(ctx context.Context, a config.Asset, path string) (string, error) {
	var (
		img    image.Image
		detail string
	)
	switch a.Kind {
	case config.KindText:
		opts, err := TextOptions(a)
		if err != nil {
			return "", err
		}
		canvas, res, err := app.Renderer.Render(opts)
		if err != nil {
			return "", err
		}
		img = canvas
		detail = "font=" + res.FontSource
		if res.FontFallback {
			detail += " (fallback)"
		}
	case config.KindQRCode:
		opts, err := QROptions(a)
		if err != nil {
			return "", err
		}
		canvas, err := render.RenderQRCode(opts)
		if err != nil {
			return "", err
		}
		img = canvas
		detail = "qrcode"
	default:
		return "", fmt.Errorf("unknown asset kind %q", a.Kind)
	}

	if config.Bool(a.Grayscale) {
		img = imaging.Grayscale(img)
		detail += ", grayscale"
	}
	if a.Resize > 0 && a.Resize != img.Bounds().Dx() {
		img = imaging.Resize(img, a.Resize, a.Resize, imaging.Lanczos)
		detail += fmt.Sprintf(", %dpx", a.Resize)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := render.WritePNG(path, img); err != nil {
		return "", err
	}

	if len(a.PostProcess) > 0 {
		cmd := hook.New(a.PostProcess...)
		if err := cmd.Run(ctx, path); err != nil {
			return "", err
		}
		detail += ", post=" + a.PostProcess[0]
	}
	return detail, nil
}
