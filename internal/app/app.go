package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rook-computer/assetgen/internal/chroma"
	"github.com/rook-computer/assetgen/internal/config"
	"github.com/rook-computer/assetgen/internal/normalize"
	"github.com/rook-computer/assetgen/internal/render"
	"github.com/rook-computer/assetgen/internal/report"
)

// App runs the asset jobs and collects one result per file.
type App struct {
	Renderer *render.Renderer
	Logger   Logger
}

func New(renderer *render.Renderer) *App {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &App{Renderer: renderer, Logger: NoopLogger{}}
}

// NewForManifest builds an App whose font loader searches the manifest's
// fonts, then the system defaults, then embedded.
func NewForManifest(m config.Manifest, embedded []byte, logger Logger) *App {
	fonts := render.NewFontLoader(m.FontPaths(), embedded)
	fonts.Logger = logger
	renderer := render.NewRenderer(fonts)
	renderer.Logger = logger
	a := New(renderer)
	a.Logger = logger
	return a
}

// Generate renders every asset of m in order. A failing asset is recorded
// and the remaining assets still run. The error is only set when m is
// invalid.
func (app *App) Generate(ctx context.Context, m config.Manifest) (*report.Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	rep := report.New()
	for _, asset := range m.Resolved() {
		path := m.Path(asset.Output)
		if err := ctx.Err(); err != nil {
			rep.Fail(path, err)
			continue
		}
		detail, err := app.generate(ctx, asset, path)
		if err != nil {
			app.logger().Errorf("app", "%s: %v", asset.Name, err)
			rep.Fail(path, err)
			continue
		}
		app.logger().Infof("app", "generated %s (%s)", path, detail)
		rep.OK(path, detail)
	}
	return rep, nil
}

// RemoveBackgrounds keys out the flat background of each path in place.
func (app *App) RemoveBackgrounds(paths []string, threshold int) *report.Report {
	return chroma.RemoveAll(paths, threshold, app.logger())
}

// Normalize re-encodes mislabeled images in dir as real PNGs.
func (app *App) Normalize(dir string) (*report.Report, error) {
	return normalize.Dir(dir, app.logger())
}

func (app *App) logger() Logger {
	if app.Logger == nil {
		return NoopLogger{}
	}
	return app.Logger
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
