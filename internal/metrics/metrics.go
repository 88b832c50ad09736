// Package metrics records per-stage and per-solve counters in a private
// prometheus registry and dumps them in the text exposition format.
package metrics

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "almanac"

// Recorder implements pipeline.Observer and solver.SolveObserver.
type Recorder struct {
	reg *prometheus.Registry

	stageRuns    *prometheus.CounterVec
	intervalsIn  *prometheus.CounterVec
	intervalsOut *prometheus.CounterVec
	solves       *prometheus.CounterVec
	solveSeconds *prometheus.HistogramVec
}

// NewRecorder registers every collector on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		stageRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Times a stage was applied to an interval set.",
		}, []string{"stage"}),
		intervalsIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_intervals_in_total",
			Help:      "Intervals fed into a stage.",
		}, []string{"stage"}),
		intervalsOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_intervals_out_total",
			Help:      "Intervals produced by a stage before coalescing.",
		}, []string{"stage"}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Solved parts by outcome.",
		}, []string{"part", "status"}),
		solveSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one solved part.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"part"}),
	}
	r.reg.MustRegister(r.stageRuns, r.intervalsIn, r.intervalsOut, r.solves, r.solveSeconds)
	return r
}

// ObserveStage counts one stage application.
func (r *Recorder) ObserveStage(stage string, in, out int) {
	r.stageRuns.WithLabelValues(stage).Inc()
	r.intervalsIn.WithLabelValues(stage).Add(float64(in))
	r.intervalsOut.WithLabelValues(stage).Add(float64(out))
}

// ObserveSolve counts one solve and its duration.
func (r *Recorder) ObserveSolve(part int, err error, d time.Duration) {
	p := strconv.Itoa(part)
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.solves.WithLabelValues(p, status).Inc()
	r.solveSeconds.WithLabelValues(p).Observe(d.Seconds())
}

// Registry exposes the underlying registry (tests, custom exporters).
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteText writes every gathered family in the text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
