package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fyrsmithlabs/countdown/internal/board"
	"github.com/fyrsmithlabs/countdown/internal/puzzle"
	"github.com/fyrsmithlabs/countdown/internal/solver"
)

type exploreOptions struct {
	min       int
	max       int
	columns   int
	batchSize int
	random    bool
	seed      uint64
}

func newExploreCmd(root *rootOptions) *cobra.Command {
	opts := &exploreOptions{}

	cmd := &cobra.Command{
		Use:   "explore [N...]",
		Short: "Find one expression for every reachable value in a range",
		Long: `Find one expression, the shortest found, for every value between --min and
--max that the numbers can reach, and print them as a board.

Enumeration runs in a background worker that reports in batches; the
board is complete once every value is covered or the terms run out.

Examples:
  # Classic range 100..999
  countdown explore 2 7 9 10 25 50

  # Six random cards from the standard pool
  countdown explore --random

  # Small range, wider board
  countdown explore 1 2 3 4 --min 1 --max 30 --columns 5`,
		RunE: runE(root, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("min") {
				opts.min = a.cfg.Solver.RangeMin
			}
			if !flags.Changed("max") {
				opts.max = a.cfg.Solver.RangeMax
			}
			if !flags.Changed("batch-size") {
				opts.batchSize = a.cfg.Solver.BatchSize
			}
			return runExplore(ctx, a, cmd, args, opts)
		}),
	}

	cmd.Flags().IntVar(&opts.min, "min", 100, "smallest value to cover")
	cmd.Flags().IntVar(&opts.max, "max", 999, "largest value to cover")
	cmd.Flags().IntVar(&opts.columns, "columns", board.DefaultColumns, "board columns")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 1000, "terms pulled per worker batch")
	cmd.Flags().BoolVar(&opts.random, "random", false, "draw six cards from the standard pool instead of reading N...")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for --random (0 = time based)")
	return cmd
}

func exploreNumbers(args []string, opts *exploreOptions) ([]int, error) {
	if !opts.random {
		return puzzle.ParseNumbers(args)
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("%w: --random takes no numbers", solver.ErrInvalidInput)
	}
	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return puzzle.Draw(rand.New(rand.NewPCG(seed, seed>>1)), puzzle.DrawSize)
}

func runExplore(ctx context.Context, a *app, cmd *cobra.Command, args []string, opts *exploreOptions) error {
	numbers, err := exploreNumbers(args, opts)
	if err != nil {
		return err
	}
	rng := solver.Range{Min: opts.min, Max: opts.max}
	if err := rng.Validate(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	witnesses, pulled, err := collect(ctx, a, numbers, rng, opts.batchSize)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	a.logger.Info(ctx, "explore complete",
		zap.Ints("numbers", numbers),
		zap.Int("witnesses", len(witnesses)),
		zap.Int("terms", pulled),
		zap.Duration("elapsed", elapsed),
	)

	b := board.New(cmd.OutOrStdout())
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, b.Cards(numbers))
	fmt.Fprintln(out, b.Grid(witnesses, board.Options{Title: rng.String(), Columns: opts.columns}))
	fmt.Fprintln(out, b.Summary(board.Stats{
		Numbers: numbers,
		Range:   rng,
		Terms:   pulled,
		Found:   len(witnesses),
		Elapsed: elapsed,
	}))
	return nil
}

// collect runs a worker and a session against each other until the
// session has every witness it can get.
func collect(ctx context.Context, a *app, numbers []int, rng solver.Range, batchSize int) ([]solver.Witness, int, error) {
	in := make(chan solver.Message)
	out := make(chan solver.Batch)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return solver.NewWorker(rng, batchSize, a.logger).Serve(gctx, in, out)
	})

	session := solver.NewSession(in, out, rng)
	var witnesses []solver.Witness
	g.Go(func() error {
		defer close(in)
		if err := session.Start(gctx, numbers); err != nil {
			return err
		}
		var err error
		witnesses, err = session.Collect(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return witnesses, session.Pulled(), nil
}
