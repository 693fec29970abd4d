package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/scan"
	"github.com/eaburns/gek/token"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// A tokenRecord is a token as written by tokens --yaml.
type tokenRecord struct {
	Loc  string `yaml:"loc"`
	Kind string `yaml:"kind"`
	Text string `yaml:"text"`
}

func newTokensCmd(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "tokens [flags] [file|-]",
		Short: "Print the tokens of a source file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			toks, err := scanAll(src)
			if err != nil {
				return err
			}
			opts.vprintf("%d tokens\n", len(toks))
			return writeTokens(cmd.OutOrStdout(), toks, asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the tokens as YAML")
	return cmd
}

// readSource reads the file named by the argument,
// or standard input if there is no argument or it is -.
func readSource(cmd *cobra.Command, args []string) (*loc.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := ioutil.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return loc.NewSource("", string(data)), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	return loc.NewSource(args[0], string(data)), nil
}

// scanAll returns the tokens of the source, not including end of file.
func scanAll(src *loc.Source) ([]token.Token, error) {
	var toks []token.Token
	tz := scan.New(src)
	for {
		tok, err := tz.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func writeTokens(w io.Writer, toks []token.Token, asYAML bool) error {
	if !asYAML {
		for _, tok := range toks {
			if _, err := fmt.Fprintf(w, "%s: %s\n", tok.Loc(), tok.Describe()); err != nil {
				return err
			}
		}
		return nil
	}
	recs := make([]tokenRecord, 0, len(toks))
	for _, tok := range toks {
		recs = append(recs, tokenRecord{
			Loc:  tok.Loc().String(),
			Kind: tok.Kind.String(),
			Text: tok.Text(),
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return err
	}
	return enc.Close()
}
