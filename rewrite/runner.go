package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jurand/java/symbols"
)

var log = commonlog.GetLogger("jurand.rewrite")

// Runner processes tasks with fixed parameters.
type Runner struct {
	Params *symbols.Parameters

	// Diff prints a unified diff instead of the rewritten content when
	// not rewriting in place.
	Diff bool

	// Jobs is the maximum number of workers, 0 means one per CPU.
	Jobs int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	mu sync.Mutex
}

func NewRunner(params *symbols.Parameters) *Runner {
	return &Runner{
		Params: params,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// HandleFile runs the pipeline on one file and returns the resulting
// content. In place, the file is only written when the result is strictly
// shorter; otherwise the result is printed to Stdout.
func (r *Runner) HandleFile(ctx context.Context, t Task) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debugf("processing %s", displayName(t.Path))

	original, err := r.read(t.Path)
	if err != nil {
		return nil, &FileError{Path: t.Path, Op: "read", Err: err}
	}
	content := symbols.HandleContent(original, r.Params)

	if !r.Params.InPlace {
		if err := r.print(t.Path, original, content); err != nil {
			return content, &FileError{Path: t.Path, Op: "print", Err: err}
		}
		return content, nil
	}

	if len(content) >= len(original) {
		log.Debugf("%s unchanged", t.Path)
		return content, nil
	}
	if err := writeFile(t.Path, content); err != nil {
		return content, &FileError{Path: t.Path, Op: "write", Err: err}
	}
	log.Debugf("%s truncated %d -> %d bytes", t.Path, len(original), len(content))
	r.write(r.Stderr, []byte(fmt.Sprintf("Removing symbols from file %s\n", t.Path)))
	r.Params.Observer().FileTruncated(t.Origin)
	return content, nil
}

// Run processes tasks on up to Jobs workers. It returns the errors of all
// failed tasks; a failing task does not stop the others.
func (r *Runner) Run(ctx context.Context, tasks []Task) []error {
	workers := r.workers(len(tasks))
	log.Debugf("processing %d files with %d workers", len(tasks), workers)

	var (
		next atomic.Int64
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(next.Add(1) - 1)
				if i >= len(tasks) {
					return nil
				}
				if err := r.handle(ctx, tasks[i]); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

func (r *Runner) handle(ctx context.Context, t Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &FileError{Path: t.Path, Op: "process", Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	_, err = r.HandleFile(ctx, t)
	return err
}

func (r *Runner) workers(tasks int) int {
	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(tasks, jobs))
}

func (r *Runner) read(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(r.Stdin)
	}
	return os.ReadFile(path)
}

func (r *Runner) print(path string, original, content []byte) error {
	var buf bytes.Buffer
	if r.Diff {
		diff, err := unifiedDiff(displayName(path), original, content)
		if err != nil {
			return err
		}
		buf.WriteString(diff)
	} else {
		if path != "" {
			buf.WriteString(path)
			buf.WriteString(":\n")
		}
		buf.Write(content)
	}
	if buf.Len() == 0 {
		return nil
	}
	return r.write(r.Stdout, buf.Bytes())
}

// write emits one block without interleaving with other workers.
func (r *Runner) write(w io.Writer, p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := w.Write(p)
	return err
}

func writeFile(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, content, mode.Perm())
}

func displayName(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
