// Package presets holds the built-in manifests for the app's launcher,
// adaptive and splash assets.
package presets

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/rook-computer/assetgen/internal/config"
)

const (
	Title    = "MAHTO"
	Subtitle = "Land & Properties"

	// RemoveBackgroundTarget is the image the chroma key runs on by default.
	RemoveBackgroundTarget = "assets/images/categories/lands.png"
	// NormalizeDir holds the city photos that are sometimes saved as JPEG.
	NormalizeDir = "assets/images/cities"
)

// SplashSubtitleAlpha is the opacity of the splash subtitle.
const SplashSubtitleAlpha = 180

// Default is the preset used when none is named.
const Default = "adaptive"

var registry = map[string]func() config.Manifest{
	"icons":    Icons,
	"adaptive": Adaptive,
	"splash":   Splash,
}

// Names lists the available presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a fresh copy of the named preset.
func Get(name string) (config.Manifest, error) {
	build, ok := registry[name]
	if !ok {
		return config.Manifest{}, fmt.Errorf("unknown preset %q (have %v)", name, Names())
	}
	return build(), nil
}

// Icons is the launcher icon plus the adaptive foreground layer.
func Icons() config.Manifest {
	return config.Manifest{
		Defaults: config.Asset{
			Title:        Title,
			Subtitle:     Subtitle,
			TitleSize:    160,
			SubtitleSize: 40,
			Gap:          intPtr(30),
			Background:   "#000000",
			Foreground:   "#FFFFFF",
		},
		Assets: []config.Asset{
			{Name: "icon", Output: "assets/images/icon.png"},
			{Name: "android-icon-foreground", Output: "assets/images/android-icon-foreground.png", Transparent: boolPtr(true)},
		},
	}
}

// Adaptive is the full icon set with the subtitle letter-spaced to the
// title's width.
func Adaptive() config.Manifest {
	return config.Manifest{
		Defaults: config.Asset{
			Title:             Title,
			Subtitle:          Subtitle,
			TitleSize:         160,
			SubtitleSize:      32,
			Gap:               intPtr(40),
			Background:        "black",
			Foreground:        "white",
			UppercaseSubtitle: boolPtr(true),
			MatchTitleWidth:   boolPtr(true),
		},
		Assets: []config.Asset{
			{Name: "icon", Output: "assets/images/icon.png"},
			{Name: "splash-icon", Output: "assets/images/splash-icon.png", Transparent: boolPtr(true)},
			{Name: "android-icon-foreground", Output: "assets/images/android-icon-foreground.png", Transparent: boolPtr(true)},
			{Name: "android-icon-background", Output: "assets/images/android-icon-background.png"},
			{Name: "android-icon-monochrome", Output: "assets/images/android-icon-monochrome.png", Transparent: boolPtr(true), Grayscale: boolPtr(true)},
			{Name: "favicon", Output: "assets/images/favicon.png", Resize: 48},
		},
	}
}

// Splash is the preview splash with a translucent subtitle.
func Splash() config.Manifest {
	return config.Manifest{
		Defaults: config.Asset{
			Title:             Title,
			Subtitle:          "LAND & PROPERTIES",
			TitleSize:         140,
			SubtitleSize:      28,
			Gap:               intPtr(40),
			Background:        "#000000FF",
			Foreground:        "white",
			SubtitleColor:     config.FormatColor(color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: SplashSubtitleAlpha}),
			UppercaseSubtitle: boolPtr(false),
		},
		Assets: []config.Asset{
			{Name: "splash-icon", Output: "assets/images/splash-icon.png"},
		},
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
