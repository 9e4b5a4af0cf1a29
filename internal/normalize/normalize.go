// Package normalize re-encodes images whose content does not match their
// .png extension, which breaks bundlers that trust the extension.
package normalize

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/rook-computer/assetgen/internal/report"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Detect returns the registered format name of the encoded image at path,
// e.g. "png" or "jpeg".
func Detect(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", path, err)
	}
	return format, nil
}

// File rewrites path as a real PNG when its content is in another format.
// It reports the original format and whether the file was converted.
func File(path string) (format string, converted bool, err error) {
	format, err = Detect(path)
	if err != nil {
		return "", false, err
	}
	if format == "png" {
		return format, false, nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		return format, false, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		return format, false, fmt.Errorf("save %s: %w", path, err)
	}
	return format, true, nil
}

// Dir normalizes every *.png file directly inside dir, one at a time.
// A file that fails does not stop the scan. The error is only set when dir
// itself cannot be read.
func Dir(dir string, logger Logger) (*report.Report, error) {
	rep := report.New()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		format, converted, err := File(path)
		switch {
		case err != nil:
			if logger != nil {
				logger.Errorf("normalize", "error processing %s: %v", entry.Name(), err)
			}
			rep.Fail(path, err)
		case converted:
			if logger != nil {
				logger.Infof("normalize", "converted %s from %s to png", entry.Name(), strings.ToUpper(format))
			}
			rep.OK(path, "converted from "+format)
		default:
			rep.Skip(path, "already "+format)
		}
	}
	return rep, nil
}
