package app

import (
	"bufio"
	"context"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"almanac/internal/cli"
	"almanac/internal/cmdutil"
	"almanac/internal/metrics"
	"almanac/internal/pipeline"
	"almanac/internal/solver"
	"almanac/internal/writers"
)

func (r *runner) solveCmd() *cobra.Command {
	var o cli.SolveOptions
	cmd := &cobra.Command{
		Use:   "solve [flags] FILE...",
		Short: "Print the lowest location for part 1, part 2, or both",
		Long: `Solve every FILE and write one answer per file and part.

FILE may be "-" for stdin, a ".gz" file, or a glob such as "inputs/*.txt".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.ApplyEnv(cmd.Flags(), r.env)
			if err := o.AfterParse(cmd.Flags(), args); err != nil {
				return usageErr(err)
			}
			if err := o.Validate(); err != nil {
				return usageErr(err)
			}
			return r.solve(cmd.Context(), o)
		},
	}
	o.Register(cmd.Flags())
	return cmd
}

func (r *runner) solve(parent context.Context, o cli.SolveOptions) error {
	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	// Keep obs a nil interface unless metrics are wanted.
	var obs pipeline.Observer
	var rec *metrics.Recorder
	if o.Metrics {
		rec = metrics.NewRecorder()
		obs = rec
	}
	sv := solver.New(pipeline.Config{Threads: thr, CoalesceEvery: o.CoalesceEvery}, obs)

	outw := bufio.NewWriter(r.stdout)
	inCh, writeErr := writers.StartAnswerWriter(outw, o.Output, o.Header, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := cmdutil.SolveFiles(ctx, r.log, sv, o.Files, o.Parts(), func(a solver.Answer) error {
		select {
		case inCh <- a:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(inCh)

	if werr := <-writeErr; werr != nil {
		return &exitError{code: ExitRuntime, err: werr}
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return nil
	} else if e != nil {
		return &exitError{code: ExitRuntime, err: e}
	}

	if rec != nil {
		if err := rec.WriteText(r.stderr); err != nil {
			r.log.Warn("write metrics", zap.Error(err))
		}
	}
	if perr != nil {
		return classify(perr)
	}
	r.log.Debug("solve finished",
		zap.Int("files", len(o.Files)),
		zap.Int("answers", total),
		zap.Int("threads", thr))
	return nil
}
