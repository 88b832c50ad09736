package app

import (
	"bufio"

	"github.com/spf13/cobra"

	"almanac/internal/almanac"
	"almanac/internal/cli"
	"almanac/internal/cmdutil"
	"almanac/internal/pipeline"
	"almanac/internal/writers"
)

func (r *runner) traceCmd() *cobra.Command {
	var o cli.TraceOptions
	cmd := &cobra.Command{
		Use:   "trace --seed N FILE",
		Short: "Show the value of one seed after every stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.ApplyEnv(cmd.Flags(), r.env)
			if err := o.AfterParse(cmd.Flags(), args); err != nil {
				return usageErr(err)
			}
			if err := o.Validate(); err != nil {
				return usageErr(err)
			}
			return r.trace(o)
		},
	}
	o.Register(cmd.Flags())
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func (r *runner) trace(o cli.TraceOptions) error {
	alm, err := almanac.Load(o.File)
	if err != nil {
		return classify(err)
	}
	cmdutil.CheckAlmanac(r.log, alm, false)

	p := pipeline.FromStages(alm.Stages, pipeline.Config{}, nil)
	steps := writers.TraceSteps(p.Names(), p.Trace(o.Seed))

	outw := bufio.NewWriter(r.stdout)
	if err := writers.WriteTrace(outw, o.Output, o.Header, steps); err != nil && !writers.IsBrokenPipe(err) {
		return &exitError{code: ExitRuntime, err: err}
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return &exitError{code: ExitRuntime, err: err}
	}
	return nil
}
