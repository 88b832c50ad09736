// Package writers turns solver answers and value traces into serialized
// output.
//
// Design:
//   - Writers own all presentation knowledge (TSV text, JSON, JSONL, YAML).
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - JSON/JSONL/YAML go through pkg/api (v1) for a stable wire format.
package writers
