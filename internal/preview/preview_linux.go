//go:build linux

package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	fb "github.com/gonutz/framebuffer"
	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

// Show draws the image at path on the framebuffer and keeps it there until
// ctx is done or opts.Hold elapses.
func Show(ctx context.Context, path string, opts Options) error {
	opts = opts.withDefaults()
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	dev, err := fb.Open(opts.Device)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.Device, err)
	}
	defer dev.Close()
	bounds := dev.Bounds()
	opts.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())

	// Graphics mode hides the console cursor; failure only costs a blinking cursor.
	if err := setConsoleMode(kdGraphics); err != nil {
		opts.Logger.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		defer func() {
			if err := setConsoleMode(kdText); err != nil {
				opts.Logger.Errorf("tty", "KD_TEXT failed: %v", err)
			}
		}()
	}

	blit(dev, Compose(img, bounds, opts.Background))
	opts.Logger.Infof("fb", "showing %s", path)

	if opts.Hold <= 0 {
		<-ctx.Done()
		return nil
	}
	timer := time.NewTimer(opts.Hold)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
	return nil
}

func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}
