package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"

	"github.com/eaburns/gek/ast"
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/mod"
	"github.com/eaburns/peggy/peg"
	"github.com/eaburns/pretty"
	"github.com/spf13/cobra"
)

type parseOptions struct {
	*options
	modPath string
	root    string
	deps    bool
	pretty  bool
	trace   bool
	expr    string
}

func newParseCmd(opts *options) *cobra.Command {
	popts := &parseOptions{options: opts}
	cmd := &cobra.Command{
		Use:   "parse [flags] [file|dir|-]...",
		Short: "Parse source files and report syntax errors",
		Long: `Parse parses each source file, or the source files of each directory,
and reports the first syntax error.
With -, the source is read from standard input.
With --deps, the argument is a module which is parsed
after its imports, in dependency order.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if popts.deps && len(args) > 1 {
				return errors.New("--deps takes a single module")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, popts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&popts.modPath, "path", "main", "the module path")
	f.StringVar(&popts.root, "root", "", "root directory for imported modules (default from gek.toml)")
	f.BoolVar(&popts.deps, "deps", false, "parse the module's imports first")
	f.BoolVar(&popts.pretty, "pretty", false, "print the parse trees")
	f.BoolVar(&popts.trace, "trace", false, "print the rule trace of syntax errors")
	f.StringVarP(&popts.expr, "expr", "e", "", "parse and print a single expression")
	return cmd
}

func runParse(cmd *cobra.Command, popts *parseOptions, args []string) error {
	out := cmd.OutOrStdout()
	switch {
	case popts.expr != "":
		x, err := ast.ParseExpr("", popts.expr)
		if err != nil {
			return popts.fail(err)
		}
		fmt.Fprintln(out, x)
		if popts.pretty {
			fmt.Fprintln(out, pretty.String(withoutSources(x)))
		}
		return nil

	case len(args) == 1 && args[0] == "-":
		p := ast.NewParser(popts.modPath)
		if err := p.Parse("", cmd.InOrStdin()); err != nil {
			return popts.fail(err)
		}
		popts.print(out, p.Mod())
		return nil
	}

	if len(args) == 0 {
		args = []string{"."}
	}
	cfg, err := popts.config(cmd, args[0])
	if err != nil {
		return err
	}
	if popts.root != "" {
		cfg.ImportRoot = popts.root
	}
	if popts.deps {
		return parseDeps(cmd, popts, args[0], cfg)
	}
	files, err := sourceFiles(args, cfg)
	if err != nil {
		return err
	}
	results, err := mod.ParseAll(cmd.Context(), files, cfg)
	if err != nil {
		return popts.fail(err)
	}
	m := &ast.Mod{Path: popts.modPath}
	for _, r := range results {
		popts.vprintf("ok %s\n", r.Path)
		m.Trees = append(m.Trees, r.Tree)
	}
	popts.print(out, m)
	return nil
}

func parseDeps(cmd *cobra.Command, popts *parseOptions, srcPath string, cfg mod.Config) error {
	root, err := mod.Load(srcPath, popts.modPath, cfg)
	if err != nil {
		return err
	}
	if err := root.LoadDeps(""); err != nil {
		return popts.fail(err)
	}
	for _, m := range mod.TopologicalDeps(root) {
		popts.vprintf("parsing %s\n", m.ModPath)
		astMod, err := m.Parse(cmd.Context())
		if err != nil {
			return popts.fail(err)
		}
		popts.print(cmd.OutOrStdout(), astMod)
	}
	return nil
}

func (popts *parseOptions) print(w io.Writer, m *ast.Mod) {
	if !popts.pretty {
		return
	}
	for _, tree := range m.Trees {
		fmt.Fprintf(w, "%s (%s)\n", tree.Path, filepath.ToSlash(m.Path))
		fmt.Fprintln(w, pretty.String(withoutSources(tree)))
	}
}

// fail prints the rule trace of a syntax error if requested
// and returns the error.
func (popts *parseOptions) fail(err error) error {
	if !popts.trace {
		return err
	}
	var tr interface{ Tree() *peg.Fail }
	if errors.As(err, &tr) {
		if fail := tr.Tree(); fail != nil {
			peg.PrettyWrite(popts.stderr, fail)
			fmt.Fprintln(popts.stderr, "")
		}
	}
	return err
}

var spanType = reflect.TypeOf(loc.Span{})

// withoutSources returns a deep copy of x
// with the Src of every loc.Span set to nil,
// so that printing the copy does not print the source text at each node.
// The byte offsets are kept.
func withoutSources(x interface{}) interface{} {
	if x == nil {
		return nil
	}
	return copyValue(reflect.ValueOf(x)).Interface()
}

func copyValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		c := reflect.New(v.Type().Elem())
		c.Elem().Set(copyValue(v.Elem()))
		return c
	case reflect.Interface:
		c := reflect.New(v.Type()).Elem()
		if !v.IsNil() {
			c.Set(copyValue(v.Elem()))
		}
		return c
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			c.Index(i).Set(copyValue(v.Index(i)))
		}
		return c
	case reflect.Struct:
		c := reflect.New(v.Type()).Elem()
		if v.Type() == spanType {
			span := v.Interface().(loc.Span)
			span.Src = nil
			c.Set(reflect.ValueOf(span))
			return c
		}
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				c.Field(i).Set(copyValue(v.Field(i)))
			}
		}
		return c
	default:
		return v
	}
}
