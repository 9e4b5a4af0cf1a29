//go:build unix

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// redirectStdIO points fds 1 and 2 at the log file so panics and output from
// hook commands end up there too. Each run starts with a header line.
func redirectStdIO(path string, args []string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	fmt.Fprintf(f, "=== assetgen %s %s\n", time.Now().Format(time.RFC3339), strings.Join(args, " "))

	if err := unix.Dup2(int(f.Fd()), int(os.Stdout.Fd())); err != nil {
		return fmt.Errorf("dup stdout: %w", err)
	}
	if err := unix.Dup2(int(f.Fd()), int(os.Stderr.Fd())); err != nil {
		return fmt.Errorf("dup stderr: %w", err)
	}
	return nil
}
