//go:build !unix

package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// redirectStdIO swaps os.Stdout and os.Stderr for the log file. Runtime panics
// still go to the original stderr here.
func redirectStdIO(path string, args []string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	fmt.Fprintf(f, "=== assetgen %s %s\n", time.Now().Format(time.RFC3339), strings.Join(args, " "))
	os.Stdout = f
	os.Stderr = f
	return nil
}
