package report

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Status int

const (
	OK Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome for one file.
type Result struct {
	Path   string
	Status Status
	Detail string
	Err    error
}

func (r Result) String() string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s: %s: %v", r.Path, r.Status, r.Err)
	case r.Detail != "":
		return fmt.Sprintf("%s: %s (%s)", r.Path, r.Status, r.Detail)
	}
	return fmt.Sprintf("%s: %s", r.Path, r.Status)
}

// Counts tallies results per status.
type Counts struct {
	OK      int
	Skipped int
	Failed  int
}

// Report collects per-file results in the order they were added.
type Report struct {
	mu      sync.RWMutex
	results []Result
}

func New() *Report { return &Report{} }

func (r *Report) Add(res Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

func (r *Report) OK(path, detail string) { r.Add(Result{Path: path, Status: OK, Detail: detail}) }

func (r *Report) Skip(path, detail string) {
	r.Add(Result{Path: path, Status: Skipped, Detail: detail})
}

func (r *Report) Fail(path string, err error) { r.Add(Result{Path: path, Status: Failed, Err: err}) }

// Results returns a copy of the collected results.
func (r *Report) Results() []Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

func (r *Report) Counts() Counts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var c Counts
	for _, res := range r.results {
		switch res.Status {
		case OK:
			c.OK++
		case Skipped:
			c.Skipped++
		case Failed:
			c.Failed++
		}
	}
	return c
}

// Failed returns only the failed results.
func (r *Report) Failed() []Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Result
	for _, res := range r.results {
		if res.Status == Failed {
			out = append(out, res)
		}
	}
	return out
}

// Err joins the errors of all failed results, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		err := res.Err
		if err == nil {
			err = errors.New("failed")
		}
		errs = append(errs, fmt.Errorf("%s: %w", res.Path, err))
	}
	return errors.Join(errs...)
}

// Summary is one status line per result followed by the totals.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, res := range r.Results() {
		b.WriteString(res.String())
		b.WriteByte('\n')
	}
	c := r.Counts()
	fmt.Fprintf(&b, "%d ok, %d skipped, %d failed\n", c.OK, c.Skipped, c.Failed)
	return b.String()
}
