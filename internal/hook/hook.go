// Package hook runs an external post-processing command on a written file,
// such as a PNG optimizer.
package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

const stderrTail = 4096

// Command runs Argv with the target path appended as the last argument.
type Command struct {
	Argv []string
}

func New(argv ...string) *Command {
	return &Command{Argv: argv}
}

func (c *Command) String() string { return strings.Join(c.Argv, " ") }

// Run executes the command for path and waits for it. Stdout is discarded;
// the tail of stderr is folded into the returned error. Cancelling ctx kills
// the process.
func (c *Command) Run(ctx context.Context, path string) error {
	if len(c.Argv) == 0 {
		return errors.New("hook: empty command")
	}

	args := append(append([]string{}, c.Argv[1:]...), path)
	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	cmd.Stdout = io.Discard
	stderr := &ringBuffer{max: stderrTail}
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		msg := err.Error()
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = msg + ": " + s
		}
		return fmt.Errorf("hook %s failed: %s", c.Argv[0], msg)
	}
	return nil
}

// ringBuffer keeps the last max bytes written to it.
type ringBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (r *ringBuffer) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max <= 0 {
		return len(p), nil
	}

	if len(p) >= r.max {
		r.buf = append(r.buf[:0], p[len(p)-r.max:]...)
		return len(p), nil
	}

	if len(r.buf)+len(p) > r.max {
		drop := len(r.buf) + len(p) - r.max
		r.buf = append(r.buf[drop:], p...)
		return len(p), nil
	}

	r.buf = append(r.buf, p...)
	return len(p), nil
}

func (r *ringBuffer) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.buf)
}
