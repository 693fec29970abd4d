package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eaburns/gek/mod"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// options are the flags shared by all commands.
type options struct {
	verbose bool
	noColor bool
	workers int
	ext     string

	stderr io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "gekc",
		Short: "gekc parses gek source files",
		Long: `gekc is the front end of the gek compiler.
It tokenizes and parses gek source files and modules,
reporting the first syntax error of each.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.stderr = cmd.ErrOrStderr()
			if opts.noColor {
				color.NoColor = true
			}
		},
	}
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	pf.IntVarP(&opts.workers, "workers", "j", 0, "number of files parsed concurrently (default from gek.toml or the number of CPUs)")
	pf.StringVar(&opts.ext, "ext", "", "source file extension (default from gek.toml or .gek)")

	cmd.AddCommand(
		newParseCmd(opts),
		newTokensCmd(opts),
		newListCmd(opts),
		newModsCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (opts *options) vprintf(f string, vs ...interface{}) {
	if !opts.verbose || opts.stderr == nil {
		return
	}
	fmt.Fprintf(opts.stderr, f, vs...)
}

// config loads the configuration for the source path,
// with command-line flags overriding the config file.
func (opts *options) config(cmd *cobra.Command, srcPath string) (mod.Config, error) {
	dir := srcPath
	if info, err := os.Stat(srcPath); err == nil && !info.IsDir() {
		dir = filepath.Dir(srcPath)
	}
	cfg, err := mod.LoadConfig(dir)
	if err != nil {
		return mod.Config{}, err
	}
	if cmd.Flags().Changed("workers") {
		if opts.workers <= 0 {
			return mod.Config{}, errors.New("--workers must be positive")
		}
		cfg.Workers = opts.workers
	}
	if cmd.Flags().Changed("ext") {
		cfg.Ext = opts.ext
		if !strings.HasPrefix(cfg.Ext, ".") {
			cfg.Ext = "." + cfg.Ext
		}
	}
	opts.vprintf("config: ext=%s workers=%d import_root=%s\n", cfg.Ext, cfg.Workers, cfg.ImportRoot)
	return cfg, nil
}

// sourceFiles returns the source files named by the arguments.
// A directory argument names the source files directly inside it.
func sourceFiles(args []string, cfg mod.Config) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		m, err := mod.Load(arg, filepath.Base(arg), cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, m.SrcFiles...)
	}
	return files, nil
}

var (
	errLoc = color.New(color.FgRed)
	errMsg = color.New(color.Bold)
)

// printError prints an error, coloring its location.
func printError(w io.Writer, err error) {
	s := err.Error()
	i := strings.Index(s, ": ")
	if i < 0 {
		errMsg.Fprintln(w, s)
		return
	}
	errLoc.Fprint(w, s[:i+1])
	errMsg.Fprintln(w, s[i+1:])
}
