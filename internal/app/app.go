// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"almanac/internal/almanac"
	"almanac/internal/cli"
	"almanac/internal/cmdutil"
	"almanac/internal/config"
	"almanac/internal/engine"
	"almanac/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, arguments, or input data
	ExitRuntime  = 3 // I/O and other runtime failures
	ExitCanceled = 130
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: ExitUsage, err: err} }

// classify maps an error from loading or solving to an exit code.
func classify(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return &exitError{code: ExitCanceled, err: err}
	case errors.Is(err, almanac.ErrParse),
		errors.Is(err, engine.ErrInvalidRule),
		errors.Is(err, engine.ErrNegativeLength),
		errors.Is(err, engine.ErrRangeOverflow):
		return &exitError{code: ExitUsage, err: err}
	}
	return &exitError{code: ExitRuntime, err: err}
}

// runner holds the per-invocation state shared by the subcommands.
type runner struct {
	stdout, stderr io.Writer

	global cli.GlobalOptions
	env    config.Env
	log    *zap.Logger
}

func (r *runner) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "almanac",
		Short: "Map seeds through staged range tables",
		Long: `almanac reads an almanac (a seeds line followed by "<name> map:" blocks of
"dest src length" rules) and reports the lowest value reachable after the
last stage.

Part 1 maps every seed on its own. Part 2 reads the seeds as (start, length)
pairs and maps whole intervals, splitting them at rule boundaries.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (--env-file, or .env in the current directory)
  3. ALMANAC_* environment variables
  4. Command-line flags`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, err := config.Load(r.global.EnvFile)
			if err != nil {
				return usageErr(fmt.Errorf("config: %w", err))
			}
			r.env = env
			r.global.ApplyEnv(cmd.Flags(), env)
			if err := r.global.Validate(); err != nil {
				return usageErr(err)
			}
			log, err := cmdutil.NewLogger(r.global.EffectiveLevel(), r.global.LogFormat, r.stderr)
			if err != nil {
				return usageErr(err)
			}
			r.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if r.log != nil {
				_ = r.log.Sync()
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })
	r.global.Register(root.PersistentFlags())

	root.AddCommand(r.solveCmd(), r.traceCmd(), versionCmd())
	return root
}

// RunContext executes argv and returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{} // cobra falls back to os.Args on nil
	}
	r := &runner{stdout: stdout, stderr: stderr}
	root := r.rootCmd()
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if r.log != nil {
		_ = r.log.Sync()
	}
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if !errors.As(err, &ee) {
		// Argument and unknown-command errors come from cobra itself.
		ee = &exitError{code: ExitUsage, err: err}
	}
	switch {
	case ee.code == ExitCanceled:
		return ExitCanceled
	case writers.IsBrokenPipe(ee.err):
		return ExitOK
	}
	_, _ = fmt.Fprintln(stderr, "error:", ee.err)
	return ee.code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
