// Package solver drives the pipeline in point mode (part one) and range mode
// (part two) and reports the smallest destination value.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"almanac/internal/engine"
	"almanac/internal/pipeline"
)

// ErrEmptyResult means the pipeline produced nothing to take a minimum of.
// Well-formed input with at least one seed never triggers it.
var ErrEmptyResult = errors.New("empty result")

// ErrUnknownPart is returned for parts other than 1 and 2.
var ErrUnknownPart = errors.New("unknown part")

// Mode names how seeds are fed into the pipeline.
type Mode string

const (
	ModePoint Mode = "point"
	ModeRange Mode = "range"
)

// Answer describes one solved part.
type Answer struct {
	Source    string // input the almanac came from; empty for in-memory runs
	Part      int
	Mode      Mode
	Minimum   int64
	Seeds     int   // seed values read from the input
	Intervals int   // intervals (or values) left after the last stage
	Covered   int64 // values represented by the initial set
}

// SolveObserver is an optional extension of pipeline.Observer that is told
// about whole solves.
type SolveObserver interface {
	ObserveSolve(part int, err error, d time.Duration)
}

// Solver holds the pipeline settings shared by every solve.
type Solver struct {
	cfg pipeline.Config
	obs pipeline.Observer
}

// New returns a Solver. obs may be nil.
func New(cfg pipeline.Config, obs pipeline.Observer) *Solver {
	return &Solver{cfg: cfg, obs: obs}
}

// Solve runs one part over seeds and stages.
func (s *Solver) Solve(ctx context.Context, part int, seeds []int64, stages []*engine.Stage) (a Answer, err error) {
	if so, ok := s.obs.(SolveObserver); ok {
		start := time.Now()
		defer func() { so.ObserveSolve(part, err, time.Since(start)) }()
	}
	if err := ctx.Err(); err != nil {
		return Answer{}, err
	}
	p := pipeline.FromStages(stages, s.cfg, s.obs)

	switch part {
	case 1:
		return s.pointMode(ctx, p, seeds)
	case 2:
		return s.rangeMode(ctx, p, seeds)
	}
	return Answer{}, fmt.Errorf("%w: %d", ErrUnknownPart, part)
}

func (s *Solver) pointMode(ctx context.Context, p *pipeline.Pipeline, seeds []int64) (Answer, error) {
	locs, err := p.LookupAll(ctx, seeds)
	if err != nil {
		return Answer{}, err
	}
	if len(locs) == 0 {
		return Answer{}, fmt.Errorf("part 1: %w", ErrEmptyResult)
	}
	m := locs[0]
	for _, v := range locs[1:] {
		m = min(m, v)
	}
	return Answer{
		Part:      1,
		Mode:      ModePoint,
		Minimum:   m,
		Seeds:     len(seeds),
		Intervals: len(locs),
		Covered:   int64(len(seeds)),
	}, nil
}

func (s *Solver) rangeMode(ctx context.Context, p *pipeline.Pipeline, seeds []int64) (Answer, error) {
	rs, err := engine.FromPairs(seeds)
	if err != nil {
		return Answer{}, fmt.Errorf("part 2: %w", err)
	}
	out, err := p.Run(ctx, rs)
	if err != nil {
		return Answer{}, err
	}
	m, ok := out.Min()
	if !ok {
		return Answer{}, fmt.Errorf("part 2: %w", ErrEmptyResult)
	}
	return Answer{
		Part:      2,
		Mode:      ModeRange,
		Minimum:   m,
		Seeds:     len(seeds),
		Intervals: len(out),
		Covered:   rs.Len(),
	}, nil
}

// MinimumDestination runs rs through p and returns the smallest start.
func MinimumDestination(ctx context.Context, p *pipeline.Pipeline, rs engine.RangeSet) (int64, error) {
	out, err := p.Run(ctx, rs)
	if err != nil {
		return 0, err
	}
	m, ok := out.Min()
	if !ok {
		return 0, ErrEmptyResult
	}
	return m, nil
}

// SolvePartOne maps every seed on its own and returns the lowest result.
func SolvePartOne(ctx context.Context, seeds []int64, stages []*engine.Stage) (int64, error) {
	a, err := New(pipeline.Config{}, nil).Solve(ctx, 1, seeds, stages)
	return a.Minimum, err
}

// SolvePartTwo reads seeds as (start, length) pairs and returns the lowest
// value reachable from any of the ranges.
func SolvePartTwo(ctx context.Context, seeds []int64, stages []*engine.Stage) (int64, error) {
	a, err := New(pipeline.Config{CoalesceEvery: 1}, nil).Solve(ctx, 2, seeds, stages)
	return a.Minimum, err
}
