// Countdown enumerates the arithmetic expressions reachable from a set of
// numbers, as in the numbers round of the Countdown game show.
//
// Usage:
//
//	# Every way to make 744
//	countdown solve 744 2 7 9 10 25 50
//
//	# One expression for every value from 100 to 999
//	countdown explore 2 7 9 10 25 50
//
//	# Solve a file of puzzles in parallel
//	countdown batch puzzles.toml --workers 8
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/countdown/internal/solver"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
)

const (
	exitError        = 1
	exitInvalidInput = 2
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the CLI and maps errors to exit codes.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, solver.ErrInvalidInput) {
			return exitInvalidInput
		}
		return exitError
	}
	return 0
}

// rootOptions holds persistent flag values.
type rootOptions struct {
	configPath  string
	logLevel    string
	logFormat   string
	metricsFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Enumerate arithmetic expressions over a set of numbers",
		Long: `countdown enumerates every non-redundant expression that combines a set of
positive integers with + - * /, using each number at most once and keeping
every intermediate result a positive integer.

Configuration is read from ~/.config/countdown/config.yaml (or --config)
and COUNTDOWN_* environment variables, e.g. COUNTDOWN_SOLVER_BATCH_SIZE.`,
		Version:       fmt.Sprintf("%s (%s)", version, gitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/countdown/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	cmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	cmd.AddCommand(
		newSolveCmd(opts),
		newExploreCmd(opts),
		newSubsetsCmd(opts),
		newBatchCmd(opts),
	)
	return cmd
}
