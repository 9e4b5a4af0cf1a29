package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rook-computer/assetgen/internal/app"
	"github.com/rook-computer/assetgen/internal/assets"
	"github.com/rook-computer/assetgen/internal/chroma"
	"github.com/rook-computer/assetgen/internal/config"
	"github.com/rook-computer/assetgen/internal/presets"
	"github.com/rook-computer/assetgen/internal/preview"
	"github.com/rook-computer/assetgen/internal/report"
)

const envStdioLog = "ASSETGEN_STDIO_LOG"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	manifest  string
	preset    string
	root      string
	font      string
	threshold int
	// thresholdSet is true when -threshold was given explicitly.
	thresholdSet bool
	debug        bool
	stdioLog     string
	device       string
	hold         time.Duration
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("assetgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.manifest, "manifest", "", "YAML manifest describing the assets to generate")
	fs.StringVar(&opts.preset, "preset", presets.Default, "built-in manifest used when -manifest is empty")
	fs.StringVar(&opts.root, "root", "", "project directory relative paths resolve against; also configurable via "+config.EnvRoot)
	fs.StringVar(&opts.font, "font", "", "font file tried before the system fonts; also configurable via "+config.EnvFont)
	fs.IntVar(&opts.threshold, "threshold", chroma.DefaultThreshold, "per-channel background distance for removebg, 0..256; also configurable via "+config.EnvThreshold)
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging to ./assetgen-debug.log")
	fs.StringVar(&opts.stdioLog, "stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	fs.StringVar(&opts.device, "device", preview.DefaultDevice, "framebuffer device for preview")
	fs.DurationVar(&opts.hold, "hold", 0, "how long preview keeps the image up (0 = until interrupted)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: assetgen [flags] [generate | removebg [file...] | normalize [dir] | preview file | presets]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			opts.thresholdSet = true
		}
	})

	// Best-effort: unattended runs (CI, build hooks) keep their output in a file.
	logPath := opts.stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath, args); err != nil {
			fmt.Fprintln(stderr, "stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if opts.debug {
		f, err := os.OpenFile("./assetgen-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Fprintln(stderr, "debug log open error:", err)
		}
	}

	cmd, rest := "generate", []string(nil)
	if fs.NArg() > 0 {
		cmd, rest = fs.Arg(0), fs.Args()[1:]
	}

	switch cmd {
	case "generate":
		return runGenerate(ctx, opts, logger, stdout, stderr)
	case "removebg":
		return runRemoveBackground(opts, rest, logger, stdout, stderr)
	case "normalize":
		return runNormalize(opts, rest, logger, stdout, stderr)
	case "preview":
		return runPreview(ctx, opts, rest, logger, stderr)
	case "presets":
		return runPresets(opts, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return exitUsage
	}
}

func loadManifest(opts options) (config.Manifest, error) {
	var (
		m   config.Manifest
		err error
	)
	if opts.manifest != "" {
		m, err = config.Load(opts.manifest)
	} else {
		m, err = presets.Get(opts.preset)
	}
	if err != nil {
		return config.Manifest{}, err
	}
	m.ApplyEnv()
	if opts.root != "" {
		m.Root = opts.root
	}
	if opts.font != "" {
		m.Fonts = append([]string{opts.font}, m.Fonts...)
	}
	return m, nil
}

func runGenerate(ctx context.Context, opts options, logger app.Logger, stdout, stderr io.Writer) int {
	m, err := loadManifest(opts)
	if err != nil {
		fmt.Fprintln(stderr, "manifest error:", err)
		return exitUsage
	}
	a := app.NewForManifest(m, assets.FontTTF, logger)
	rep, err := a.Generate(ctx, m)
	if err != nil {
		fmt.Fprintln(stderr, "manifest error:", err)
		return exitUsage
	}
	return finish(rep, logger, stdout)
}

func runRemoveBackground(opts options, paths []string, logger app.Logger, stdout, stderr io.Writer) int {
	threshold, err := removalThreshold(opts)
	if err != nil {
		fmt.Fprintln(stderr, "config error:", err)
		return exitUsage
	}
	if len(paths) == 0 {
		paths = []string{presets.RemoveBackgroundTarget}
	}
	root := projectRoot(opts)
	for i, p := range paths {
		paths[i] = resolve(root, p)
	}

	a := app.New(nil)
	a.Logger = logger
	return finish(a.RemoveBackgrounds(paths, threshold), logger, stdout)
}

// removalThreshold prefers an explicit -threshold, then the environment.
func removalThreshold(opts options) (int, error) {
	if !opts.thresholdSet {
		return config.ThresholdFromEnv(chroma.DefaultThreshold)
	}
	if err := config.CheckThreshold(opts.threshold); err != nil {
		return 0, fmt.Errorf("-threshold: %w", err)
	}
	return opts.threshold, nil
}

func runNormalize(opts options, args []string, logger app.Logger, stdout, stderr io.Writer) int {
	dir := presets.NormalizeDir
	if len(args) > 0 {
		dir = args[0]
	}
	a := app.New(nil)
	a.Logger = logger
	rep, err := a.Normalize(resolve(projectRoot(opts), dir))
	if err != nil {
		fmt.Fprintln(stderr, "normalize error:", err)
		return exitFailure
	}
	return finish(rep, logger, stdout)
}

func runPreview(ctx context.Context, opts options, args []string, logger app.Logger, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "preview needs exactly one image")
		return exitUsage
	}
	err := preview.Show(ctx, resolve(projectRoot(opts), args[0]), preview.Options{
		Device: opts.device,
		Hold:   opts.hold,
		Logger: logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, "preview error:", err)
		return exitFailure
	}
	return exitOK
}

func runPresets(opts options, stdout, stderr io.Writer) int {
	m, err := presets.Get(opts.preset)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	data, err := config.Marshal(m)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	fmt.Fprintf(stdout, "# presets: %v\n", presets.Names())
	_, _ = stdout.Write(data)
	return exitOK
}

// finish prints the per-file status lines and totals and maps failures to
// the exit code.
func finish(rep *report.Report, logger app.Logger, stdout io.Writer) int {
	_, _ = io.WriteString(stdout, rep.Summary())
	if err := rep.Err(); err != nil {
		logger.Errorf("main", "%v", err)
		return exitFailure
	}
	return exitOK
}

func projectRoot(opts options) string {
	if opts.root != "" {
		return opts.root
	}
	return os.Getenv(config.EnvRoot)
}

func resolve(root, p string) string {
	if root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
