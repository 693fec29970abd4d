package main

import (
	"fmt"
	"io"

	"github.com/eaburns/gek/ast"
	"github.com/eaburns/gek/mod"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// A declRecord is a declaration as written by list --yaml.
type declRecord struct {
	File   string `yaml:"file"`
	Line   int    `yaml:"line"`
	Col    int    `yaml:"col"`
	Header string `yaml:"decl"`
}

func newListCmd(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "list [flags] [file|dir]...",
		Short: "List the declarations of source files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := opts.config(cmd, args[0])
			if err != nil {
				return err
			}
			files, err := sourceFiles(args, cfg)
			if err != nil {
				return err
			}
			results, err := mod.ParseAll(cmd.Context(), files, cfg)
			if err != nil {
				return err
			}
			var trees []*ast.Tree
			for _, r := range results {
				trees = append(trees, r.Tree)
			}
			return writeDecls(cmd.OutOrStdout(), declRecords(trees), asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the declarations as YAML")
	return cmd
}

func declRecords(trees []*ast.Tree) []declRecord {
	recs := []declRecord{}
	for _, tree := range trees {
		for _, d := range tree.Decls {
			l := d.Loc()
			recs = append(recs, declRecord{
				File:   tree.Path,
				Line:   l.Line[0],
				Col:    l.Col[0],
				Header: d.String(),
			})
		}
	}
	return recs
}

func writeDecls(w io.Writer, recs []declRecord, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "%s:%d.%d: %s\n", r.File, r.Line, r.Col, r.Header); err != nil {
			return err
		}
	}
	return nil
}
