package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvRoot      = "ASSETGEN_ROOT"
	EnvFont      = "ASSETGEN_FONT"
	EnvThreshold = "ASSETGEN_THRESHOLD"
)

// ErrInvalid is wrapped by every manifest validation failure.
var ErrInvalid = errors.New("invalid manifest")

// DefaultFontPaths are the well-known locations of a bold sans-serif font.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
}

type Kind string

const (
	KindText   Kind = "text"
	KindQRCode Kind = "qrcode"
)

// Asset describes one output image. Zero fields inherit from
// Manifest.Defaults; pointer fields distinguish "unset" from false or 0.
type Asset struct {
	Name   string `yaml:"name,omitempty"`
	Output string `yaml:"output,omitempty"`
	Kind   Kind   `yaml:"kind,omitempty"`

	Title        string  `yaml:"title,omitempty"`
	Subtitle     string  `yaml:"subtitle,omitempty"`
	TitleSize    float64 `yaml:"title_size,omitempty"`
	SubtitleSize float64 `yaml:"subtitle_size,omitempty"`
	Gap          *int    `yaml:"gap,omitempty"`

	Background    string `yaml:"background,omitempty"`
	Foreground    string `yaml:"foreground,omitempty"`
	SubtitleColor string `yaml:"subtitle_color,omitempty"`
	Transparent   *bool  `yaml:"transparent,omitempty"`

	UppercaseSubtitle *bool `yaml:"uppercase_subtitle,omitempty"`
	MatchTitleWidth   *bool `yaml:"match_title_width,omitempty"`

	// Payload and Margin are used by qrcode assets.
	Payload string `yaml:"payload,omitempty"`
	Margin  int    `yaml:"margin,omitempty"`

	CanvasSize int `yaml:"canvas_size,omitempty"`
	// Resize scales the finished canvas down to a Resize x Resize square.
	Resize    int   `yaml:"resize,omitempty"`
	Grayscale *bool `yaml:"grayscale,omitempty"`

	// PostProcess is a command run with the output path appended.
	PostProcess []string `yaml:"post_process,omitempty"`
}

// Manifest is the full description of a generation run.
type Manifest struct {
	// Root is prepended to relative output paths.
	Root     string   `yaml:"root,omitempty"`
	Fonts    []string `yaml:"fonts,omitempty"`
	Defaults Asset    `yaml:"defaults,omitempty"`
	Assets   []Asset  `yaml:"assets"`
}

// Baseline holds the values every asset falls back to last.
func Baseline() Asset {
	return Asset{
		Kind:              KindText,
		TitleSize:         160,
		SubtitleSize:      40,
		Gap:               intPtr(30),
		Background:        "#000000",
		Foreground:        "#FFFFFF",
		Transparent:       boolPtr(false),
		UppercaseSubtitle: boolPtr(true),
		MatchTitleWidth:   boolPtr(false),
		Grayscale:         boolPtr(false),
		CanvasSize:        1024,
	}
}

// Load reads a YAML manifest. Unknown keys are rejected.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return m, nil
}

// Marshal renders m as YAML.
func Marshal(m Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ApplyEnv overrides Root and prepends a font from the environment.
func (m *Manifest) ApplyEnv() {
	if root := os.Getenv(EnvRoot); root != "" {
		m.Root = root
	}
	if font := os.Getenv(EnvFont); font != "" {
		m.Fonts = append([]string{font}, m.Fonts...)
	}
}

// FontPaths is the manifest's fonts followed by DefaultFontPaths.
func (m Manifest) FontPaths() []string {
	out := make([]string, 0, len(m.Fonts)+len(DefaultFontPaths))
	out = append(out, m.Fonts...)
	for _, p := range DefaultFontPaths {
		if !contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// Path resolves an output path against Root.
func (m Manifest) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Root == "" {
		return p
	}
	return filepath.Join(m.Root, p)
}

// Resolved returns every asset with Defaults and Baseline merged in.
func (m Manifest) Resolved() []Asset {
	base := merge(m.Defaults, Baseline())
	out := make([]Asset, len(m.Assets))
	for i, a := range m.Assets {
		out[i] = merge(a, base)
	}
	return out
}

// Validate checks every resolved asset and reports all problems at once.
func (m Manifest) Validate() error {
	if len(m.Assets) == 0 {
		return fmt.Errorf("%w: no assets", ErrInvalid)
	}
	var errs []error
	seen := map[string]bool{}
	for i, a := range m.Resolved() {
		name := a.Name
		if name == "" {
			name = "#" + strconv.Itoa(i)
		}
		if err := a.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("asset %s: %w", name, err))
		}
		out := m.Path(a.Output)
		if out != "" && seen[out] {
			errs = append(errs, fmt.Errorf("asset %s: %w: duplicate output %s", name, ErrInvalid, out))
		}
		seen[out] = true
	}
	return errors.Join(errs...)
}

// Validate checks a resolved asset.
func (a Asset) Validate() error {
	var problems []string
	if strings.TrimSpace(a.Output) == "" {
		problems = append(problems, "missing output")
	}
	switch a.Kind {
	case KindText:
		if strings.TrimSpace(a.Title) == "" {
			problems = append(problems, "missing title")
		}
		if strings.TrimSpace(a.Subtitle) == "" {
			problems = append(problems, "missing subtitle")
		}
		if a.TitleSize <= 0 || a.SubtitleSize <= 0 {
			problems = append(problems, "font sizes must be positive")
		}
		if a.Gap != nil && *a.Gap < 0 {
			problems = append(problems, "gap must not be negative")
		}
	case KindQRCode:
		if a.Payload == "" {
			problems = append(problems, "missing payload")
		}
		if a.Margin < 0 {
			problems = append(problems, "margin must not be negative")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown kind %q", a.Kind))
	}
	if a.CanvasSize <= 0 {
		problems = append(problems, "canvas size must be positive")
	}
	if a.Resize < 0 || a.Resize > a.CanvasSize {
		problems = append(problems, fmt.Sprintf("resize %d outside 0..%d", a.Resize, a.CanvasSize))
	}
	for field, value := range map[string]string{"background": a.Background, "foreground": a.Foreground, "subtitle_color": a.SubtitleColor} {
		if value == "" {
			continue
		}
		if _, err := ParseColor(value); err != nil {
			problems = append(problems, field+": "+err.Error())
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}

// ThresholdFromEnv returns EnvThreshold when set, else def.
func ThresholdFromEnv(def int) (int, error) {
	raw := os.Getenv(EnvThreshold)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q): %w", EnvThreshold, raw, err)
	}
	if err := CheckThreshold(v); err != nil {
		return 0, fmt.Errorf("%s: %w", EnvThreshold, err)
	}
	return v, nil
}

// CheckThreshold rejects thresholds outside 0..256. 256 clears every pixel.
func CheckThreshold(v int) error {
	if v < 0 || v > 256 {
		return fmt.Errorf("threshold must be within 0..256 (got %d)", v)
	}
	return nil
}

// merge fills zero fields of a from base.
func merge(a, base Asset) Asset {
	if a.Kind == "" {
		a.Kind = base.Kind
	}
	if a.Title == "" {
		a.Title = base.Title
	}
	if a.Subtitle == "" {
		a.Subtitle = base.Subtitle
	}
	if a.TitleSize == 0 {
		a.TitleSize = base.TitleSize
	}
	if a.SubtitleSize == 0 {
		a.SubtitleSize = base.SubtitleSize
	}
	if a.Gap == nil {
		a.Gap = base.Gap
	}
	if a.Background == "" {
		a.Background = base.Background
	}
	if a.Foreground == "" {
		a.Foreground = base.Foreground
	}
	if a.SubtitleColor == "" {
		a.SubtitleColor = base.SubtitleColor
	}
	if a.Transparent == nil {
		a.Transparent = base.Transparent
	}
	if a.UppercaseSubtitle == nil {
		a.UppercaseSubtitle = base.UppercaseSubtitle
	}
	if a.MatchTitleWidth == nil {
		a.MatchTitleWidth = base.MatchTitleWidth
	}
	if a.Payload == "" {
		a.Payload = base.Payload
	}
	if a.Margin == 0 {
		a.Margin = base.Margin
	}
	if a.CanvasSize == 0 {
		a.CanvasSize = base.CanvasSize
	}
	if a.Resize == 0 {
		a.Resize = base.Resize
	}
	if a.Grayscale == nil {
		a.Grayscale = base.Grayscale
	}
	if len(a.PostProcess) == 0 {
		a.PostProcess = base.PostProcess
	}
	return a
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// Bool dereferences p, treating nil as false.
func Bool(p *bool) bool { return p != nil && *p }

// Int dereferences p, treating nil as 0.
func Int(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
