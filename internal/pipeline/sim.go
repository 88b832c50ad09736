// internal/pipeline/sim.go
package pipeline

import "almanac/internal/engine"

// Splitter is the minimal capability the pipeline needs from a stage.
// *engine.Stage satisfies it; tests use fakes.
type Splitter interface {
	Name() string
	Lookup(v int64) int64
	AppendSplit(dst []engine.Interval, iv engine.Interval) []engine.Interval
}

// Observer is told how many intervals went into and came out of each stage.
type Observer interface {
	ObserveStage(stage string, in, out int)
}
