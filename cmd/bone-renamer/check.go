package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bone-renamer/internal/service"
	"bone-renamer/internal/watch"
)

func newCheckCmd(a *app) *cobra.Command {
	var watchTables bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the preset tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			first := report(out, svc.Check(cmd.Context()))

			if !watchTables {
				return first
			}

			if first != nil {
				_, _ = fmt.Fprintln(out, first)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return watchAndCheck(ctx, a, svc, cmd)
		},
	}

	cmd.Flags().BoolVarP(&watchTables, "watch", "w", false, "Re-check whenever a table file changes")

	return cmd
}

func watchAndCheck(ctx context.Context, a *app, svc *service.Service, cmd *cobra.Command) error {
	var paths []string
	for _, src := range svc.Config().Sources() {
		paths = append(paths, src.Path)
	}

	w := watch.New(paths, a.logger.Named("watch"))
	out := cmd.OutOrStdout()

	a.logger.Info("watching tables", "count", len(paths))

	return w.Run(ctx, func(ctx context.Context, path string) {
		_, _ = fmt.Fprintf(out, "%s changed\n", path)

		if err := report(out, svc.Check(ctx)); err != nil {
			_, _ = fmt.Fprintln(out, err)
		}
	})
}
