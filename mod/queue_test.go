package mod

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/eaburns/gek/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePop(t *testing.T) {
	q := NewQueue([]string{"a", "b"})
	assert.Equal(t, 2, q.Len())

	i, path, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, "a", path)

	i, path, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "b", path)

	_, _, ok = q.Pop()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Len())
}

func TestQueueConcurrentPop(t *testing.T) {
	var paths []string
	for i := 0; i < 100; i++ {
		paths = append(paths, fmt.Sprintf("%d.gek", i))
	}
	q := NewQueue(paths)

	var mu sync.Mutex
	seen := make(map[int]int)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i, _, ok := q.Pop()
				if !ok {
					return
				}
				mu.Lock()
				seen[i]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, len(paths))
	for i, n := range seen {
		assert.Equal(t, 1, n, "index %d popped %d times", i, n)
	}
}

func TestParseAllOrder(t *testing.T) {
	var files []file
	var paths []string
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("f%02d.gek", i)
		files = append(files, file{path: name, body: fmt.Sprintf("func f%d() => %d;", i, i)})
	}
	root := newFS(t, files)
	for _, f := range files {
		paths = append(paths, filepath.Join(root, f.path))
	}

	for _, workers := range []int{1, 3, 64} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		results, err := ParseAll(context.Background(), paths, cfg)
		require.NoError(t, err)
		require.Len(t, results, len(paths))
		for i, r := range results {
			assert.Equal(t, paths[i], r.Path)
			assert.NoError(t, r.Err)
			require.NotNil(t, r.Tree)
			require.Len(t, r.Tree.Decls, 1)
			fun, ok := r.Tree.Decls[0].Def.(*ast.FuncDecl)
			require.True(t, ok, "got %T, want *ast.FuncDecl", r.Tree.Decls[0].Def)
			assert.Equal(t, fmt.Sprintf("f%d", i), fun.Name)
		}
	}
}

func TestParseAllEmpty(t *testing.T) {
	results, err := ParseAll(context.Background(), nil, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseAllError(t *testing.T) {
	root := newFS(t, []file{
		{path: "a.gek", body: "func a();"},
		{path: "b.gek", body: "func b("},
	})
	paths := []string{filepath.Join(root, "a.gek"), filepath.Join(root, "b.gek")}

	cfg := DefaultConfig()
	cfg.Workers = 1
	results, err := ParseAll(context.Background(), paths, cfg)
	require.Error(t, err)
	var se *ast.SyntaxError
	require.True(t, errors.As(err, &se), "got %T, want *ast.SyntaxError", err)

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Tree)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Tree)
}

func TestParseAllStopsAfterError(t *testing.T) {
	root := newFS(t, []file{
		{path: "a.gek", body: "func a("},
		{path: "b.gek", body: "func b();"},
		{path: "c.gek", body: "func c();"},
	})
	var paths []string
	for _, name := range []string{"a.gek", "b.gek", "c.gek"} {
		paths = append(paths, filepath.Join(root, name))
	}

	cfg := DefaultConfig()
	cfg.Workers = 1
	results, err := ParseAll(context.Background(), paths, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, results[1].Err, context.Canceled)
	assert.ErrorIs(t, results[2].Err, context.Canceled)
	assert.Nil(t, results[1].Tree)
}

func TestParseAllMissingFile(t *testing.T) {
	root := newFS(t, nil)
	_, err := ParseAll(context.Background(), []string{filepath.Join(root, "none.gek")}, DefaultConfig())
	assert.Error(t, err)
}

func TestParseAllCanceled(t *testing.T) {
	root := newFS(t, []file{{path: "a.gek", body: "func a();"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ParseAll(ctx, []string{filepath.Join(root, "a.gek")}, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}
