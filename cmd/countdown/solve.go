package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/countdown/internal/board"
	"github.com/fyrsmithlabs/countdown/internal/puzzle"
	"github.com/fyrsmithlabs/countdown/internal/solver"
)

type solveOptions struct {
	limit   int
	closest bool
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	opts := &solveOptions{}

	cmd := &cobra.Command{
		Use:   "solve TARGET N...",
		Short: "Print every expression over N... that equals TARGET",
		Long: `Print every distinct expression over the given numbers whose value is
TARGET, one "value = expression" line each, shortest first.

Examples:
  # All solutions
  countdown solve 744 2 7 9 10 25 50

  # First solution only, or the nearest value if none exists
  countdown solve 952 25 50 75 100 3 6 --limit 1 --closest`,
		Args: cobra.MinimumNArgs(2),
		RunE: runE(root, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				opts.limit = a.cfg.Solver.Limit
			}
			return runSolve(ctx, a, cmd, args, opts)
		}),
	}

	cmd.Flags().IntVar(&opts.limit, "limit", 0, "stop after this many solutions (0 = all)")
	cmd.Flags().BoolVar(&opts.closest, "closest", false, "report the nearest reachable value when TARGET is unreachable")
	return cmd
}

func runSolve(ctx context.Context, a *app, cmd *cobra.Command, args []string, opts *solveOptions) error {
	target, err := puzzle.ParseTarget(args[0])
	if err != nil {
		return err
	}
	numbers, err := puzzle.ParseNumbers(args[1:])
	if err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	res, err := a.svc.Solve(ctx, &solver.SolveRequest{
		Numbers: numbers,
		Range:   solver.Exact(target),
		Limit:   opts.limit,
		Closest: opts.closest,
	})
	if err != nil {
		return err
	}

	writeSolveResult(cmd, board.New(cmd.OutOrStdout()), target, res)
	a.logger.Debug(ctx, "solve printed", zap.Int("solutions", len(res.Solutions)))
	return nil
}

// writeSolveResult prints solutions, or the closest value, or a note that
// there is nothing to print.
func writeSolveResult(cmd *cobra.Command, b *board.Board, target int, res *solver.SolveResult) {
	out := cmd.OutOrStdout()
	switch {
	case len(res.Solutions) > 0:
		fmt.Fprintln(out, b.Solutions(res.Solutions))
	case res.Closest != nil:
		fmt.Fprintf(out, "no solution for %d; closest (off by %d):\n", target, abs(res.Closest.Value-target))
		fmt.Fprintln(out, b.Solutions([]solver.Witness{*res.Closest}))
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "no solution for %d\n", target)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
