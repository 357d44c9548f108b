package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"bone-renamer/internal/match"
)

func newDetectCmd(a *app) *cobra.Command {
	var (
		bones []string
		top   int
	)

	cmd := &cobra.Command{
		Use:   "detect [skeleton.json]",
		Short: "Detect which preset a skeleton follows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			sk, _, err := a.readSkeleton(svc.Config(), path, bones)
			if err != nil {
				return err
			}

			res := svc.DetectPreset(cmd.Context(), sk)

			out := cmd.OutOrStdout()
			if res.Detection != nil && top > 0 {
				for _, c := range res.Detection.Candidates.Top(top) {
					printCandidate(out, c)
				}
			}

			return report(out, res)
		},
	}

	cmd.Flags().StringSliceVarP(&bones, "bones", "b", nil, "Bone names to inspect instead of a document")
	cmd.Flags().IntVar(&top, "top", 0, "Also print the N best candidates with their matched slots")

	return cmd
}

// printCandidate writes "preset count/total coverage table[slots]...".
func printCandidate(w io.Writer, c match.Candidate) {
	var tables []string

	for _, table := range slices.Sorted(maps.Keys(c.Matched)) {
		slots := c.MatchedSlots(table)
		if len(slots) == 0 {
			continue
		}

		idx := make([]string, len(slots))
		for i, s := range slots {
			idx[i] = strconv.FormatUint(uint64(s), 10)
		}

		tables = append(tables, fmt.Sprintf("%s[%s]", table, strings.Join(idx, ",")))
	}

	_, _ = fmt.Fprintf(w, "%-24s %d/%d %5.1f%% %s\n",
		c.Preset, c.Count, c.Total, 100*c.Coverage(), strings.Join(tables, " "))
}
