package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/eaburns/gek/ast"
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/mod"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run runs gekc with the arguments and standard input,
// returning its standard output and standard error.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type file struct {
	path string
	body string
}

func newFS(t *testing.T, files []file) string {
	t.Helper()
	root := t.TempDir()
	for _, file := range files {
		path := filepath.Join(root, file.path)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), os.ModePerm))
		require.NoError(t, os.WriteFile(path, []byte(file.body), 0o644))
	}
	return root
}

func TestRunVersion(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	require.NoError(t, runVersion(cmd, []string{}))
	output := buf.String()
	assert.Contains(t, output, "gekc ")
	assert.Contains(t, output, "Commit:")
	assert.Contains(t, output, "Go version:")
	assert.Contains(t, output, "OS/Arch:")
}

func TestParseExpr(t *testing.T) {
	out, _, err := run(t, "", "parse", "-e", "1 + 2 * 2")
	require.NoError(t, err)
	assert.Equal(t, "(1 + (2 * 2))\n", out)
}

func TestParseExprError(t *testing.T) {
	_, _, err := run(t, "", "parse", "-e", "1 +")
	require.Error(t, err)
	var se *ast.SyntaxError
	require.True(t, errors.As(err, &se), "got %T, want *ast.SyntaxError", err)
	assert.Contains(t, err.Error(), "end of file")
}

func TestParseStdin(t *testing.T) {
	out, _, err := run(t, "func f() => 1;", "parse", "--pretty", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "(main)")
	assert.Contains(t, out, `"f"`)
}

func TestParseTrace(t *testing.T) {
	_, stderr, err := run(t, "func f(", "parse", "--trace", "-")
	require.Error(t, err)
	assert.NotEmpty(t, stderr)

	_, stderr, err = run(t, "func f(", "parse", "-")
	require.Error(t, err)
	assert.Empty(t, stderr)
}

func TestParseDir(t *testing.T) {
	root := newFS(t, []file{
		{path: "a.gek", body: "func a();"},
		{path: "b.gek", body: "struct B { x: i32 }"},
		{path: "c.txt", body: "not gek"},
	})

	out, stderr, err := run(t, "", "parse", "-v", "-j", "2", root)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "workers=2")
	assert.Contains(t, stderr, "ok "+filepath.Join(root, "a.gek"))
	assert.Contains(t, stderr, "ok "+filepath.Join(root, "b.gek"))
	assert.NotContains(t, stderr, "c.txt")
}

func TestParseDirError(t *testing.T) {
	root := newFS(t, []file{
		{path: "a.gek", body: "func a();"},
		{path: "b.gek", body: "func b() => ;"},
	})

	_, _, err := run(t, "", "parse", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.gek")
}

func TestParseDeps(t *testing.T) {
	root := newFS(t, []file{
		{path: "app/main.gek", body: `import "util"; func main();`},
		{path: "util/util.gek", body: `func helper();`},
	})

	_, stderr, err := run(t, "", "parse", "-v", "--deps", "--root", root, filepath.Join(root, "app"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "parsing util\nparsing main\n")
}

func TestParseDepsOneModule(t *testing.T) {
	_, _, err := run(t, "", "parse", "--deps", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single module")
}

func TestWorkersFlag(t *testing.T) {
	root := newFS(t, []file{{path: "a.gek", body: "func a();"}})
	_, _, err := run(t, "", "parse", "--workers", "0", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--workers")
}

func TestConfigFile(t *testing.T) {
	root := newFS(t, []file{
		{path: mod.ConfigFile, body: "ext = \"gk\"\nworkers = 3\n"},
		{path: "a.gk", body: "func a();"},
		{path: "b.gek", body: "not parsed"},
	})

	_, stderr, err := run(t, "", "parse", "-v", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "ext=.gk workers=3")
	assert.Contains(t, stderr, "ok "+filepath.Join(root, "a.gk"))
}

func TestTokens(t *testing.T) {
	out, _, err := run(t, "let x = 1;", "tokens")
	require.NoError(t, err)
	want := strings.Join([]string{
		":1.1-1.4: keyword let",
		":1.5-1.6: identifier x",
		":1.7-1.8: `=`",
		":1.9-1.10: number 1",
		":1.10-1.11: `;`",
	}, "\n") + "\n"
	assert.Equal(t, want, out)
}

func TestTokensYAML(t *testing.T) {
	root := newFS(t, []file{{path: "a.gek", body: `f("s")`}})
	path := filepath.Join(root, "a.gek")

	out, _, err := run(t, "", "tokens", "--yaml", path)
	require.NoError(t, err)
	var recs []tokenRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 4)
	assert.Equal(t, tokenRecord{Loc: path + ":1.1-1.2", Kind: "identifier", Text: "f"}, recs[0])
	assert.Equal(t, "string", recs[2].Kind)
	assert.Equal(t, `"s"`, recs[2].Text)
}

func TestTokensError(t *testing.T) {
	_, _, err := run(t, "\"abc\n\"", "tokens")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed string literal")
}

func TestList(t *testing.T) {
	root := newFS(t, []file{
		{path: "a.gek", body: "func add(a: i32, b: i32): i32 => a + b;\npub struct P { x: i32 }\n"},
	})
	path := filepath.Join(root, "a.gek")

	out, _, err := run(t, "", "list", path)
	require.NoError(t, err)
	want := path + ":1.1: func add(a: i32, b: i32): i32\n" +
		path + ":2.1: pub struct P\n"
	assert.Equal(t, want, out)

	out, _, err = run(t, "", "list", "--yaml", path)
	require.NoError(t, err)
	var recs []declRecord
	require.NoError(t, yaml.Unmarshal([]byte(out), &recs))
	assert.Equal(t, []declRecord{
		{File: path, Line: 1, Col: 1, Header: "func add(a: i32, b: i32): i32"},
		{File: path, Line: 2, Col: 1, Header: "pub struct P"},
	}, recs)
}

func TestMods(t *testing.T) {
	root := newFS(t, []file{
		{path: "app/main.gek", body: `import "lib/b"; import "lib/a";`},
		{path: "lib/a/a.gek", body: ``},
		{path: "lib/b/b.gek", body: `import "lib/a";`},
	})

	out, _, err := run(t, "", "mods", root)
	require.NoError(t, err)
	assert.Equal(t, "lib/a\nlib/b\napp\n", out)
}

func TestWatcherHandle(t *testing.T) {
	root := newFS(t, []file{
		{path: "a.gek", body: "func a();"},
		{path: "b.gek", body: "func b("},
		{path: "c.txt", body: ""},
	})
	var out bytes.Buffer
	w := &watcher{opts: &options{}, cfg: mod.DefaultConfig(), out: &out}

	w.handle(fsnotify.Event{Name: filepath.Join(root, "a.gek"), Op: fsnotify.Write})
	assert.Equal(t, "ok "+filepath.Join(root, "a.gek")+": 1 declarations\n", out.String())

	out.Reset()
	w.handle(fsnotify.Event{Name: filepath.Join(root, "b.gek"), Op: fsnotify.Create})
	assert.Contains(t, out.String(), "b.gek")
	assert.NotContains(t, out.String(), "ok ")

	out.Reset()
	w.handle(fsnotify.Event{Name: filepath.Join(root, "c.txt"), Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: filepath.Join(root, "a.gek"), Op: fsnotify.Chmod})
	assert.Empty(t, out.String())
}

func TestPrintError(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	printError(&buf, errors.New("a.gek:1.2: unexpected end of file"))
	printError(&buf, errors.New("no location"))
	assert.Equal(t, "a.gek:1.2: unexpected end of file\nno location\n", buf.String())
}

func TestWithoutSources(t *testing.T) {
	x, err := ast.ParseExpr("x.gek", "f(a)[1]")
	require.NoError(t, err)
	c := withoutSources(x).(ast.Expr)

	var walk func(v reflect.Value)
	walk = func(v reflect.Value) {
		switch v.Kind() {
		case reflect.Ptr, reflect.Interface:
			if !v.IsNil() {
				walk(v.Elem())
			}
		case reflect.Slice:
			for i := 0; i < v.Len(); i++ {
				walk(v.Index(i))
			}
		case reflect.Struct:
			if span, ok := v.Interface().(loc.Span); ok {
				assert.Nil(t, span.Src)
				return
			}
			for i := 0; i < v.NumField(); i++ {
				if v.Type().Field(i).IsExported() {
					walk(v.Field(i))
				}
			}
		}
	}
	walk(reflect.ValueOf(c))
	assert.Equal(t, 7, c.GetSpan().End)
	assert.Equal(t, x.String(), c.String())

	// The parsed tree keeps its sources.
	assert.Equal(t, "f(a)[1]", x.GetSpan().Text())
	assert.Equal(t, "x.gek:1.1-1.8", x.GetSpan().Loc().String())
}

func TestParsePrettyKeepsSpans(t *testing.T) {
	popts := &parseOptions{options: &options{}, pretty: true}
	tree, err := ast.ParseSource(loc.NewSource("a.gek", "func f() => 1;"))
	require.NoError(t, err)
	var out strings.Builder
	popts.print(&out, &ast.Mod{Path: "m", Trees: []*ast.Tree{tree}})
	assert.Contains(t, out.String(), "a.gek (m)")
	require.NotNil(t, tree.Decls[0].Src)
	assert.Equal(t, "a.gek", tree.Decls[0].Loc().Path)
}
