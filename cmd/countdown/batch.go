package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/countdown/internal/board"
	"github.com/fyrsmithlabs/countdown/internal/logging"
	"github.com/fyrsmithlabs/countdown/internal/puzzle"
	"github.com/fyrsmithlabs/countdown/internal/solver"
)

type batchOptions struct {
	workers int
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Solve every puzzle in a TOML file",
		Long: `Solve every [[puzzle]] table in FILE, several at a time, and print the
results in file order.

A puzzle has numbers and either a target or a min/max range:

  [[puzzle]]
  name = "classic"
  numbers = [2, 7, 9, 10, 25, 50]
  target = 744
  limit = 3

  [[puzzle]]
  numbers = [100, 75, 3, 6]
  target = 952
  closest = true

Examples:
  countdown batch puzzles.toml --workers 8`,
		Args: cobra.ExactArgs(1),
		RunE: runE(root, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				opts.workers = a.cfg.Solver.Workers
			}
			return runBatch(ctx, a, cmd, args[0], opts)
		}),
	}

	cmd.Flags().IntVar(&opts.workers, "workers", 4, "puzzles solved concurrently")
	return cmd
}

func runBatch(ctx context.Context, a *app, cmd *cobra.Command, path string, opts *batchOptions) error {
	if opts.workers < 1 {
		return fmt.Errorf("%w: --workers must be at least 1", solver.ErrInvalidInput)
	}
	puzzles, err := puzzle.LoadFile(path)
	if err != nil {
		return err
	}
	a.logger.Info(ctx, "batch loaded", zap.String("path", path), zap.Int("puzzles", len(puzzles)))

	results := make([]*solver.SolveResult, len(puzzles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)
	for i := range puzzles {
		p := &puzzles[i]
		g.Go(func() error {
			pctx, cancel := a.withTimeout(logging.WithPuzzle(gctx, p.Name))
			defer cancel()

			res, err := a.svc.Solve(pctx, &solver.SolveRequest{
				Numbers: p.Numbers,
				Range:   p.Range(),
				Limit:   p.Limit,
				Closest: p.Closest,
			})
			if err != nil {
				return fmt.Errorf("puzzle %q: %w", p.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b := board.New(cmd.OutOrStdout())
	out := cmd.OutOrStdout()
	for i, p := range puzzles {
		fmt.Fprintf(out, "== %s: %s -> %s\n", p.Name, joinInts(p.Numbers), p.Range())
		res := results[i]
		switch {
		case len(res.Solutions) > 0:
			fmt.Fprintln(out, b.Solutions(res.Solutions))
		case res.Closest != nil:
			fmt.Fprintf(out, "closest: %s\n", b.Solutions([]solver.Witness{*res.Closest}))
		default:
			fmt.Fprintln(out, "no solution")
		}
	}
	return nil
}

func joinInts(ns []int) string {
	fields := make([]string, len(ns))
	for i, n := range ns {
		fields[i] = strconv.Itoa(n)
	}
	return strings.Join(fields, " ")
}
