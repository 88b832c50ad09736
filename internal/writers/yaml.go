// internal/writers/yaml.go
package writers

import (
	"io"

	"gopkg.in/yaml.v3"

	"almanac/internal/solver"
	"almanac/pkg/api"
)

const FormatYAML = "yaml"

func init() {
	RegisterAnswer(FormatYAML, writeYAML)
	RegisterTrace(FormatYAML, func(out io.Writer, _ bool, steps []api.TraceStepV1) error {
		return encodeYAML(out, steps)
	})
}

func writeYAML(out io.Writer, _ bool, in <-chan solver.Answer) error {
	list := []api.AnswerV1{}
	for a := range in {
		list = append(list, ToAPIAnswer(a))
	}
	return encodeYAML(out, list)
}

func encodeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
