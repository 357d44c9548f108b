package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newPresetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the presets defined by the tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			res := svc.Presets(cmd.Context())

			out := cmd.OutOrStdout()
			for _, name := range res.Presets {
				var in []string
				for _, t := range res.Tables {
					if slices.Contains(t.Presets, name) {
						in = append(in, t.Name)
					}
				}

				_, _ = fmt.Fprintf(out, "%s\t%s\n", name, strings.Join(in, ","))
			}

			return report(out, res)
		},
	}
}
