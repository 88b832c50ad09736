// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"almanac/internal/solver"
	"almanac/pkg/api"
)

// AnswerFormat drains in and writes every answer to out.
type AnswerFormat func(out io.Writer, header bool, in <-chan solver.Answer) error

// TraceFormat writes a complete trace to out.
type TraceFormat func(out io.Writer, header bool, steps []api.TraceStepV1) error

// Format registries (name → handler). Formats register themselves in init()
// blocks of text.go, json.go and yaml.go.
var (
	answerFormats = map[string]AnswerFormat{}
	traceFormats  = map[string]TraceFormat{}
)

// Register helpers (idempotent, last wins).
func RegisterAnswer(name string, fn AnswerFormat) { answerFormats[name] = fn }
func RegisterTrace(name string, fn TraceFormat)   { traceFormats[name] = fn }

// Formats lists the registered answer formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(answerFormats))
	for name := range answerFormats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Known reports whether format has an answer writer.
func Known(format string) bool {
	_, ok := answerFormats[format]
	return ok
}

// KnownTrace reports whether format has a trace writer.
func KnownTrace(format string) bool {
	_, ok := traceFormats[format]
	return ok
}

// WriteTrace dispatches to the trace writer registered for format.
func WriteTrace(out io.Writer, format string, header bool, steps []api.TraceStepV1) error {
	fn, ok := traceFormats[format]
	if !ok {
		return fmt.Errorf("unknown trace format %q (no writer registered)", format)
	}
	return fn(out, header, steps)
}

// ToAPIAnswer converts a solver answer to the stable wire schema (v1).
func ToAPIAnswer(a solver.Answer) api.AnswerV1 {
	return api.AnswerV1{
		Source:    a.Source,
		Part:      a.Part,
		Mode:      string(a.Mode),
		Minimum:   a.Minimum,
		Seeds:     a.Seeds,
		Intervals: a.Intervals,
		Covered:   a.Covered,
	}
}

// TraceSteps pairs stage names with the values from pipeline.Trace.
// values has one more entry than names; the first is the seed.
func TraceSteps(names []string, values []int64) []api.TraceStepV1 {
	steps := make([]api.TraceStepV1, 0, len(values))
	for i, v := range values {
		stage := "seed"
		if i > 0 && i-1 < len(names) {
			stage = names[i-1]
		}
		steps = append(steps, api.TraceStepV1{Stage: stage, Value: v})
	}
	return steps
}
