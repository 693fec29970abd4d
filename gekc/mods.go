package main

import (
	"fmt"

	"github.com/eaburns/gek/mod"
	"github.com/spf13/cobra"
)

func newModsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mods [root]",
		Short: "List the modules beneath a directory, dependencies first",
		Long: `Mods lists the modules in the directory tree beneath root
in topological order, dependencies before their dependants.
Each directory containing source files is a module,
and imports are resolved relative to root.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			cfg, err := opts.config(cmd, root)
			if err != nil {
				return err
			}
			mods, err := mod.Discover(root, cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range mod.TopologicalDeps(mods...) {
				opts.vprintf("%s: %d files\n", m.SrcDir, len(m.SrcFiles))
				fmt.Fprintln(out, m.ModPath)
			}
			return nil
		},
	}
}
