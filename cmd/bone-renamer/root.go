package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "bone-renamer",
		Short:        "Rename skeleton bones between rigging naming presets",
		Version:      version,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to configuration file (default bone-renamer.yaml if present)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	flags.StringArrayVarP(&a.tables, "table", "t", nil, "Preset table as path or name=path; repeatable, replaces configured tables")
	flags.BoolVar(&a.strict, "strict", false, "Reject table rows whose slot count differs from the first row")
	flags.BoolVar(&a.useCache, "cache", false, "Cache parsed tables in SQLite")

	root.AddCommand(
		newRenameCmd(a),
		newDetectCmd(a),
		newPresetsCmd(a),
		newCheckCmd(a),
	)

	return root
}
