package metrics

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"almanac/internal/pipeline"
	"almanac/internal/solver"
	tu "almanac/internal/testutil"
)

var (
	_ pipeline.Observer    = (*Recorder)(nil)
	_ solver.SolveObserver = (*Recorder)(nil)
)

func TestObserveStage(t *testing.T) {
	r := NewRecorder()
	r.ObserveStage("seed-to-soil", 2, 3)
	r.ObserveStage("seed-to-soil", 3, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.stageRuns.WithLabelValues("seed-to-soil")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.intervalsIn.WithLabelValues("seed-to-soil")))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.intervalsOut.WithLabelValues("seed-to-soil")))
}

func TestObserveSolve(t *testing.T) {
	r := NewRecorder()
	r.ObserveSolve(1, nil, time.Millisecond)
	r.ObserveSolve(2, errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("1", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("2", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.solveSeconds))
}

func TestRecorderWiredThroughSolver(t *testing.T) {
	r := NewRecorder()
	sv := solver.New(pipeline.Config{CoalesceEvery: 1}, r)

	a, err := sv.Solve(context.Background(), 2, tu.ExampleSeeds(), tu.ExampleStages())
	require.NoError(t, err)
	assert.Equal(t, tu.ExamplePartTwo, a.Minimum)

	// Every one of the seven stages ran exactly once.
	assert.Equal(t, 7, testutil.CollectAndCount(r.stageRuns))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stageRuns.WithLabelValues("humidity-to-location")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("2", "ok")))
}

func TestWriteText(t *testing.T) {
	r := NewRecorder()
	r.ObserveStage("a-to-b", 1, 2)
	r.ObserveSolve(1, nil, 0)

	var b bytes.Buffer
	require.NoError(t, r.WriteText(&b))
	out := b.String()
	assert.Contains(t, out, "# TYPE almanac_stage_runs_total counter")
	assert.Contains(t, out, `almanac_stage_intervals_out_total{stage="a-to-b"} 2`)
	assert.Contains(t, out, `almanac_solves_total{part="1",status="ok"} 1`)
	assert.Contains(t, out, "almanac_solve_duration_seconds_bucket")
}
