package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eaburns/gek/ast"
	"github.com/eaburns/gek/loc"
	"github.com/eaburns/gek/mod"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]...",
		Short: "Re-parse source files as they change",
		Long: `Watch parses the source files of each directory,
then re-parses each file when it is written,
until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := opts.config(cmd, args[0])
			if err != nil {
				return err
			}
			fw, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer fw.Close()

			w := &watcher{opts: opts, cfg: cfg, out: cmd.OutOrStdout()}
			for _, dir := range args {
				if err := fw.Add(dir); err != nil {
					return fmt.Errorf("failed to watch %s: %w", dir, err)
				}
				files, err := sourceFiles([]string{dir}, cfg)
				if err != nil {
					return err
				}
				for _, file := range files {
					w.parse(file)
				}
			}

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-fw.Events:
					if !ok {
						return nil
					}
					w.handle(ev)
				case err, ok := <-fw.Errors:
					if !ok {
						return nil
					}
					return err
				}
			}
		},
	}
}

type watcher struct {
	opts *options
	cfg  mod.Config
	out  io.Writer
}

func (w *watcher) handle(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, w.cfg.Ext) {
		return
	}
	switch {
	case ev.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.parse(ev.Name)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.opts.vprintf("removed %s\n", ev.Name)
	}
}

// parse parses the file and reports the result.
func (w *watcher) parse(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		printError(w.out, err)
		return
	}
	tree, err := ast.ParseSource(loc.NewSource(path, string(data)))
	if err != nil {
		printError(w.out, err)
		return
	}
	fmt.Fprintf(w.out, "ok %s: %d declarations\n", path, len(tree.Decls))
}
