package parallel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/msalah0e/fastkey/internal/ui"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when the configured limit is not positive.
const DefaultConcurrency = 4

// Result holds the outcome of a parallel task.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Detail  string
	Elapsed time.Duration
}

// Task is a unit of work run by Run. Fn returns a short detail line shown on
// success (an output path, for example). Anything Fn writes to out is held
// back and printed below the task's progress line once it finishes.
type Task struct {
	Name string
	Fn   func(ctx context.Context, out io.Writer) (string, error)
}

// Run executes tasks with the given concurrency limit and reports progress
// to w. Results are returned in submission order; one failing task does not
// cancel the others.
func Run(ctx context.Context, w io.Writer, tasks []Task, concurrency int) []Result {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			var buf bytes.Buffer
			start := time.Now()
			detail, err := task.Fn(ctx, &buf)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			results[i] = Result{Name: task.Name, OK: err == nil, Err: err, Detail: detail, Elapsed: elapsed}
			if err != nil {
				fmt.Fprintf(w, "  %s %s %s\n", ui.StatusIcon(false), task.Name, ui.Bad.Sprintf("(%v)", err))
			} else {
				fmt.Fprintf(w, "  %s %s %s %s\n", ui.StatusIcon(true), task.Name, detail, ui.Subtle.Sprintf("%dms", elapsed.Milliseconds()))
			}
			buf.WriteTo(w)
			return nil // collect results instead of cancelling siblings
		})
	}

	_ = g.Wait()
	return results
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
