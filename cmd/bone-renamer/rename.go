package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bone-renamer/internal/mapping"
)

func newRenameCmd(a *app) *cobra.Command {
	var (
		from, to  string
		direction string
		reverse   bool
		bones     []string
		output    string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "rename [skeleton.json]",
		Short: "Rename bones from one preset to another",
		Long: `Rename bones from one preset to another.

The skeleton is a JSON document (glTF style) whose nodes carry names, or a
bone list given with --bones. Documents are rewritten in place unless
--output or --dry-run is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := mapping.ParseDirection(direction)
			if err != nil {
				return err
			}

			if reverse {
				dir = mapping.Reverse
			}

			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}

			sk, doc, err := a.readSkeleton(svc.Config(), path, bones)
			if err != nil {
				return err
			}

			res := svc.ApplyMapping(cmd.Context(), sk, from, to, dir)

			out := cmd.OutOrStdout()
			for _, r := range res.Renamed() {
				_, _ = fmt.Fprintf(out, "%s -> %s\n", r.From, r.To)
			}

			if err := report(out, res); err != nil {
				return err
			}

			if doc == nil || dryRun {
				return nil
			}

			if output == "" {
				output = path
			}

			return a.writeDocument(doc, output)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Source preset name")
	cmd.Flags().StringVar(&to, "to", "", "Destination preset name")
	cmd.Flags().StringVarP(&direction, "direction", "d", "forward", "Mapping direction: forward or reverse")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Shorthand for --direction reverse")
	cmd.Flags().StringSliceVarP(&bones, "bones", "b", nil, "Bone names to rename instead of a document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the renamed document here instead of in place")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print renames without writing the document")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
