// internal/writers/text.go
package writers

import (
	"fmt"
	"io"

	"almanac/internal/solver"
	"almanac/pkg/api"
)

const (
	FormatText = "text"

	answerHeader = "source\tpart\tmode\tminimum\tseeds\tintervals\tcovered"
	traceHeader  = "stage\tvalue"
)

func init() {
	RegisterAnswer(FormatText, streamText)
	RegisterTrace(FormatText, writeTraceText)
}

// FormatAnswerRowTSV returns the answer columns without a trailing newline.
func FormatAnswerRowTSV(a solver.Answer) string {
	src := a.Source
	if src == "" {
		src = "-"
	}
	return fmt.Sprintf("%s\t%d\t%s\t%d\t%d\t%d\t%d",
		src, a.Part, a.Mode, a.Minimum, a.Seeds, a.Intervals, a.Covered)
}

func streamText(out io.Writer, header bool, in <-chan solver.Answer) error {
	if header {
		if _, err := fmt.Fprintln(out, answerHeader); err != nil {
			return err
		}
	}
	for a := range in {
		if _, err := fmt.Fprintln(out, FormatAnswerRowTSV(a)); err != nil {
			return err
		}
	}
	return nil
}

func writeTraceText(out io.Writer, header bool, steps []api.TraceStepV1) error {
	if header {
		if _, err := fmt.Fprintln(out, traceHeader); err != nil {
			return err
		}
	}
	for _, s := range steps {
		if _, err := fmt.Fprintf(out, "%s\t%d\n", s.Stage, s.Value); err != nil {
			return err
		}
	}
	return nil
}
