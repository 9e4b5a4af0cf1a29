package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/rook-computer/assetgen/internal/config"
	"github.com/rook-computer/assetgen/internal/presets"
	"github.com/rook-computer/assetgen/internal/report"
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func newTestApp(m config.Manifest) *App {
	return NewForManifest(m, gobold.TTF, NoopLogger{})
}

func TestGenerateAdaptivePreset(t *testing.T) {
	m := presets.Adaptive()
	m.Root = t.TempDir()
	m.Fonts = []string{filepath.Join(m.Root, "missing.ttf")}

	a := newTestApp(m)
	rep, err := a.Generate(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, report.Counts{OK: 6}, rep.Counts(), rep.Summary())

	icon := decodePNG(t, filepath.Join(m.Root, "assets/images/icon.png"))
	assert.Equal(t, image.Rect(0, 0, 1024, 1024), icon.Bounds())
	_, _, _, alpha := icon.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), alpha)

	fg := decodePNG(t, filepath.Join(m.Root, "assets/images/android-icon-foreground.png"))
	_, _, _, alpha = fg.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), alpha)

	favicon := decodePNG(t, filepath.Join(m.Root, "assets/images/favicon.png"))
	assert.Equal(t, image.Rect(0, 0, 48, 48), favicon.Bounds())

	lines := strings.Split(strings.TrimSpace(rep.Summary()), "\n")
	assert.Len(t, lines, 7)
	assert.Contains(t, lines[0], "icon.png: ok")
	assert.Equal(t, "6 ok, 0 skipped, 0 failed", lines[6])
}

func TestGenerateContinuesPastFailures(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o644))

	m := config.Manifest{
		Root:     root,
		Defaults: config.Asset{Title: "MAHTO", Subtitle: "Land & Properties", TitleSize: 80, SubtitleSize: 20, CanvasSize: 256},
		Assets: []config.Asset{
			{Name: "bad", Output: "blocked/icon.png"},
			{Name: "good", Output: "icon.png"},
			{Name: "qr", Output: "qr.png", Kind: config.KindQRCode, Payload: "https://example.com", Margin: 16},
		},
	}
	a := newTestApp(m)
	rep, err := a.Generate(context.Background(), m)
	require.NoError(t, err)

	results := rep.Results()
	require.Len(t, results, 3)
	assert.Equal(t, report.Failed, results[0].Status)
	assert.Equal(t, report.OK, results[1].Status)
	assert.Equal(t, report.OK, results[2].Status)
	assert.Equal(t, "qrcode", results[2].Detail)
	assert.Error(t, rep.Err())
}

func TestGenerateRejectsInvalidManifest(t *testing.T) {
	m := config.Manifest{Assets: []config.Asset{{Name: "x"}}}
	a := newTestApp(m)
	_, err := a.Generate(context.Background(), m)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestGenerateCancelled(t *testing.T) {
	m := presets.Icons()
	m.Root = t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestApp(m)
	rep, err := a.Generate(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, report.Counts{Failed: 2}, rep.Counts())
	assert.NoFileExists(t, filepath.Join(m.Root, "assets/images/icon.png"))
}

func TestGenerateReportsFontFallback(t *testing.T) {
	m := presets.Icons()
	m.Root = t.TempDir()
	m.Fonts = nil

	a := New(nil)
	rep, err := a.Generate(context.Background(), m)
	require.NoError(t, err)
	for _, res := range rep.Results() {
		if res.Status != report.OK {
			t.Fatalf("%s", res)
		}
		assert.Contains(t, res.Detail, "font=")
	}
}

func TestRemoveBackgrounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lands.png")
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+2], img.Pix[i+3] = 0xFF, 0xFF
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, A: 0xFF})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	a := New(nil)
	rep := a.RemoveBackgrounds([]string{path, filepath.Join(dir, "missing.png")}, 30)

	assert.Equal(t, report.Counts{OK: 1, Skipped: 1}, rep.Counts())
	assert.Contains(t, rep.Summary(), "missing.png: skipped (not found)")
	assert.NoError(t, rep.Err())
}

func TestNormalize(t *testing.T) {
	a := New(nil)
	_, err := a.Normalize(filepath.Join(t.TempDir(), "cities"))
	assert.Error(t, err)

	rep, err := a.Normalize(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, rep.Results())
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("render", "title %dx%d", 600, 116)
	l.Errorf("font", "parse failed: %v", "bad table")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " [INFO] render: title 600x116"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], " [ERROR] font: parse failed: bad table"), lines[1])
}

func TestTextOptions(t *testing.T) {
	asset := config.Manifest{
		Defaults: config.Asset{Title: "MAHTO", Subtitle: "x", SubtitleColor: "#FFFFFFB4"},
		Assets:   []config.Asset{{Output: "a.png"}},
	}.Resolved()[0]

	opts, err := TextOptions(asset)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 0xFF}, opts.Background)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 180}, opts.SubtitleColor)
	assert.Equal(t, 30, opts.Gap)
	assert.True(t, opts.UppercaseSubtitle)

	asset.Foreground = "nope"
	_, err = TextOptions(asset)
	assert.Error(t, err)
}
