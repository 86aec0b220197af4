package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/countdown/internal/puzzle"
)

func newSubsetsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "subsets N...",
		Short: "List the distinct sub-multisets of N...",
		Long: `List every distinct non-empty sub-multiset of the given numbers, smallest
first. These are the number sets the enumerator builds terms from.

Examples:
  countdown subsets 5 5 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: runE(root, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			numbers, err := puzzle.ParseNumbers(args)
			if err != nil {
				return err
			}
			subsets, err := a.svc.Subsets(ctx, numbers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, subset := range subsets {
				fmt.Fprintln(out, joinInts(subset))
			}
			return nil
		}),
	}
}
