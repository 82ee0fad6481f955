package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newClearCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear [domain]",
		Short: "Drop cached icons for one domain, or everything with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("specify either a domain or --all")
			}

			ctx := cmd.Context()
			if err := a.setup(ctx); err != nil {
				return err
			}
			defer a.teardown(ctx)

			if all {
				return a.resolver.ClearAll(ctx)
			}
			return a.resolver.Invalidate(ctx, args[0])
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "drop every cached icon")
	return cmd
}
