// pkg/api/answers_v1.go
package api

// AnswerV1 is the stable JSON/JSONL/YAML schema for one solved part.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type AnswerV1 struct {
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Part      int    `json:"part" yaml:"part"`
	Mode      string `json:"mode" yaml:"mode"` // "point" | "range"
	Minimum   int64  `json:"minimum" yaml:"minimum"`
	Seeds     int    `json:"seeds" yaml:"seeds"`
	Intervals int    `json:"intervals" yaml:"intervals"`
	Covered   int64  `json:"covered" yaml:"covered"`
}

// TraceStepV1 is one row of a value traced through the stages. The first
// row carries the starting value under Stage "seed".
type TraceStepV1 struct {
	Stage string `json:"stage" yaml:"stage"`
	Value int64  `json:"value" yaml:"value"`
}
