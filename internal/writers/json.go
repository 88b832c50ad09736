// internal/writers/json.go
package writers

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"almanac/internal/solver"
	"almanac/pkg/api"
)

const (
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

func init() {
	RegisterAnswer(FormatJSON, writeJSON)
	RegisterAnswer(FormatJSONL, streamJSONL)
	RegisterTrace(FormatJSON, func(out io.Writer, _ bool, steps []api.TraceStepV1) error {
		return encodePretty(out, steps)
	})
	RegisterTrace(FormatJSONL, func(out io.Writer, _ bool, steps []api.TraceStepV1) error {
		enc := json.NewEncoder(out)
		for _, s := range steps {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		return nil
	})
}

// encodePretty writes v as indented JSON.
func encodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeJSON buffers every answer and writes one JSON array.
func writeJSON(out io.Writer, _ bool, in <-chan solver.Answer) error {
	list := []api.AnswerV1{}
	for a := range in {
		list = append(list, ToAPIAnswer(a))
	}
	return encodePretty(out, list)
}

// Reuse a 64 KiB buffered writer across JSONL streams.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// streamJSONL writes each answer as one JSON line as it arrives.
func streamJSONL(out io.Writer, _ bool, in <-chan solver.Answer) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	for a := range in {
		if err := enc.Encode(ToAPIAnswer(a)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
