package mod

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/eaburns/gek/ast"
	"github.com/eaburns/gek/loc"
	"golang.org/x/sync/errgroup"
)

// A Result is the outcome of parsing one source file.
type Result struct {
	Path string
	Tree *ast.Tree
	Err  error
}

// A Queue is a queue of source file paths waiting to be parsed.
// It is safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	paths []string
	next  int
}

// NewQueue returns a new Queue of the paths.
func NewQueue(paths []string) *Queue {
	return &Queue{paths: paths}
}

// Pop removes and returns the next path and its index in the queue.
// The bool is false if the queue is empty.
func (q *Queue) Pop() (int, string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next >= len(q.paths) {
		return 0, "", false
	}
	i := q.next
	q.next++
	return i, q.paths[i], true
}

// Len returns the number of paths remaining in the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.paths) - q.next
}

// ParseAll parses the files with cfg.Workers concurrent workers.
// The results are in the order of files.
//
// The first error stops the workers from starting new files
// and is returned after the files in progress finish.
// The Err of each file that was never started
// is the error of the cancelled context.
func ParseAll(ctx context.Context, files []string, cfg Config) ([]Result, error) {
	results := make([]Result, len(files))
	for i, path := range files {
		results[i].Path = path
	}
	q := NewQueue(files)
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if n := q.Len(); workers > n {
		workers = n
	}
	done := make([]bool, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				i, path, ok := q.Pop()
				if !ok {
					return nil
				}
				tree, err := parseFile(path)
				results[i].Tree = tree
				results[i].Err = err
				done[i] = true
				if err != nil {
					return err
				}
			}
		})
	}
	err := g.Wait()
	if err != nil {
		for i := range results {
			if !done[i] {
				results[i].Err = context.Canceled
				if ctx.Err() != nil {
					results[i].Err = ctx.Err()
				}
			}
		}
	}
	return results, err
}

func parseFile(path string) (*ast.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ast.ParseSource(loc.NewSource(path, string(data)))
}
