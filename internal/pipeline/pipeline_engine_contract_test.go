// internal/pipeline/pipeline_engine_contract_test.go
package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almanac/internal/engine"
)

// Compile-time check: the concrete stage satisfies the minimal contract.
var _ Splitter = (*engine.Stage)(nil)

// shiftStage adds a constant to everything and splits each interval in two.
type shiftStage struct {
	name string
	by   int64
}

func (s shiftStage) Name() string         { return s.name }
func (s shiftStage) Lookup(v int64) int64 { return v + s.by }
func (s shiftStage) AppendSplit(dst []engine.Interval, iv engine.Interval) []engine.Interval {
	if iv.Empty() {
		return dst
	}
	mid := iv.Start + iv.Len()/2
	for _, piece := range []engine.Interval{{Start: iv.Start, End: mid}, {Start: mid, End: iv.End}} {
		if !piece.Empty() {
			dst = append(dst, piece.Shift(s.by))
		}
	}
	return dst
}

type countingObserver struct {
	stages  []string
	in, out []int
}

func (o *countingObserver) ObserveStage(stage string, in, out int) {
	o.stages = append(o.stages, stage)
	o.in = append(o.in, in)
	o.out = append(o.out, out)
}

func TestRunUsesSplitterAndObserver(t *testing.T) {
	obs := &countingObserver{}
	p := New([]Splitter{shiftStage{"a", 10}, shiftStage{"b", -3}}, Config{}, obs)

	out, err := p.Run(context.Background(), engine.RangeSet{{Start: 0, End: 8}})
	require.NoError(t, err)

	assert.Equal(t, engine.RangeSet{{Start: 7, End: 9}, {Start: 9, End: 11}, {Start: 11, End: 13}, {Start: 13, End: 15}}, out)
	assert.Equal(t, []string{"a", "b"}, obs.stages)
	assert.Equal(t, []int{1, 2}, obs.in)
	assert.Equal(t, []int{2, 4}, obs.out)
	assert.Equal(t, int64(17), p.Lookup(10))
	assert.Equal(t, []string{"a", "b"}, p.Names())
}
