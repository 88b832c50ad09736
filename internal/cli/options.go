// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"almanac/internal/cmdutil"
	"almanac/internal/config"
	"almanac/internal/writers"
)

// GlobalOptions are the persistent flags shared by every subcommand.
type GlobalOptions struct {
	EnvFile   string
	LogLevel  string
	LogFormat string
	Quiet     bool
}

// Register adds the persistent flags to fs.
func (o *GlobalOptions) Register(fs *pflag.FlagSet) {
	fs.StringVar(&o.EnvFile, "env-file", "", "load ALMANAC_* variables from this file [.env]")
	fs.StringVar(&o.LogLevel, "log-level", config.DefaultLogLevel, "log level: debug | info | warn | error")
	fs.StringVar(&o.LogFormat, "log-format", config.DefaultLogFormat, "log format: console | json")
	fs.BoolVarP(&o.Quiet, "quiet", "q", false, "only log errors")
}

// ApplyEnv copies env values into options whose flags were not set.
func (o *GlobalOptions) ApplyEnv(fs *pflag.FlagSet, env config.Env) {
	if !fs.Changed("log-level") {
		o.LogLevel = env.LogLevel
	}
	if !fs.Changed("log-format") {
		o.LogFormat = env.LogFormat
	}
}

// EffectiveLevel is the log level after --quiet.
func (o *GlobalOptions) EffectiveLevel() string {
	if o.Quiet {
		return "error"
	}
	return o.LogLevel
}

// Validate checks the log format; levels are checked by the logger.
func (o *GlobalOptions) Validate() error {
	switch strings.ToLower(o.LogFormat) {
	case cmdutil.LogConsole, cmdutil.LogJSON:
		return nil
	}
	return fmt.Errorf("invalid --log-format %q", o.LogFormat)
}

// SolveOptions holds the flags and inputs of `almanac solve`.
type SolveOptions struct {
	Files []string

	Part          int // 0 = both
	Output        string
	Threads       int // 0 = all CPUs
	CoalesceEvery int // 0 = never
	Header        bool
	Metrics       bool
}

// Register adds the solve flags to fs.
func (o *SolveOptions) Register(fs *pflag.FlagSet) {
	fs.IntVar(&o.Part, "part", 0, "part to solve: 1 (points) | 2 (ranges) | 0 (both)")
	fs.StringVarP(&o.Output, "output", "o", config.DefaultOutput, "output format: "+strings.Join(writers.Formats(), " | "))
	fs.IntVarP(&o.Threads, "threads", "t", config.DefaultThreads, "worker goroutines per stage (0 = all CPUs)")
	fs.IntVar(&o.CoalesceEvery, "coalesce-every", config.DefaultCoalesceEvery, "merge intervals after every N stages (0 = never)")
	fs.Bool("no-header", false, "suppress the header line in text output")
	fs.BoolVar(&o.Metrics, "metrics", false, "write prometheus metrics to stderr when done")
}

// ApplyEnv copies env values into options whose flags were not set.
func (o *SolveOptions) ApplyEnv(fs *pflag.FlagSet, env config.Env) {
	if !fs.Changed("output") {
		o.Output = env.Output
	}
	if !fs.Changed("threads") {
		o.Threads = env.Threads
	}
	if !fs.Changed("coalesce-every") {
		o.CoalesceEvery = env.CoalesceEvery
	}
}

// AfterParse fills the derived fields once flags and args are known.
func (o *SolveOptions) AfterParse(fs *pflag.FlagSet, args []string) error {
	noHeader, err := fs.GetBool("no-header")
	if err != nil {
		return err
	}
	o.Header = !noHeader
	o.Files, err = ExpandPositionals(args)
	return err
}

// Validate reports the first invalid option.
func (o *SolveOptions) Validate() error {
	if len(o.Files) == 0 {
		return errors.New("at least one almanac FILE is required")
	}
	if o.Part < 0 || o.Part > 2 {
		return fmt.Errorf("--part must be 0, 1 or 2 (got %d)", o.Part)
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.CoalesceEvery < 0 {
		return errors.New("--coalesce-every must be ≥ 0")
	}
	if !writers.Known(o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	stdin := 0
	for _, f := range o.Files {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("stdin ('-') can be read only once")
	}
	return nil
}

// Parts lists the parts to solve, in order.
func (o *SolveOptions) Parts() []int {
	if o.Part == 0 {
		return []int{1, 2}
	}
	return []int{o.Part}
}

// TraceOptions holds the flags and input of `almanac trace`.
type TraceOptions struct {
	File   string
	Seed   int64
	Output string
	Header bool
}

// Register adds the trace flags to fs. --seed is required.
func (o *TraceOptions) Register(fs *pflag.FlagSet) {
	fs.Int64Var(&o.Seed, "seed", 0, "value to follow through every stage")
	fs.StringVarP(&o.Output, "output", "o", config.DefaultOutput, "output format: "+strings.Join(writers.Formats(), " | "))
	fs.Bool("no-header", false, "suppress the header line in text output")
}

// ApplyEnv copies env values into options whose flags were not set.
func (o *TraceOptions) ApplyEnv(fs *pflag.FlagSet, env config.Env) {
	if !fs.Changed("output") {
		o.Output = env.Output
	}
}

// AfterParse fills the derived fields once flags and args are known.
func (o *TraceOptions) AfterParse(fs *pflag.FlagSet, args []string) error {
	noHeader, err := fs.GetBool("no-header")
	if err != nil {
		return err
	}
	o.Header = !noHeader
	if len(args) != 1 {
		return fmt.Errorf("trace takes exactly one FILE (got %d)", len(args))
	}
	o.File = args[0]
	return nil
}

// Validate reports the first invalid option.
func (o *TraceOptions) Validate() error {
	if !writers.KnownTrace(o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	return nil
}
