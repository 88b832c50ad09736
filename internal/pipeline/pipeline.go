// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"almanac/internal/engine"
)

// Config controls how a pipeline runs. The zero value is a serial run with
// no coalescing.
type Config struct {
	Threads       int // worker goroutines per stage (<=1 runs serially)
	ChunkSize     int // intervals per parallel task; 0 derives it from Threads
	CoalesceEvery int // coalesce after every N-th stage; 0 disables
}

// Pipeline is an ordered, read-only chain of stages.
type Pipeline struct {
	stages []Splitter
	cfg    Config
	obs    Observer
}

// New builds a pipeline over stages. obs may be nil.
func New(stages []Splitter, cfg Config, obs Observer) *Pipeline {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	return &Pipeline{stages: append([]Splitter(nil), stages...), cfg: cfg, obs: obs}
}

// FromStages adapts concrete engine stages.
func FromStages(stages []*engine.Stage, cfg Config, obs Observer) *Pipeline {
	ss := make([]Splitter, len(stages))
	for i, s := range stages {
		ss[i] = s
	}
	return New(ss, cfg, obs)
}

func (p *Pipeline) Len() int { return len(p.stages) }

// Names returns the stage names in order.
func (p *Pipeline) Names() []string {
	out := make([]string, len(p.stages))
	for i, s := range p.stages {
		out[i] = s.Name()
	}
	return out
}

// Lookup runs one value through every stage.
func (p *Pipeline) Lookup(v int64) int64 {
	for _, s := range p.stages {
		v = s.Lookup(v)
	}
	return v
}

// Trace returns v followed by its value after each stage.
func (p *Pipeline) Trace(v int64) []int64 {
	out := make([]int64, 0, len(p.stages)+1)
	out = append(out, v)
	for _, s := range p.stages {
		v = s.Lookup(v)
		out = append(out, v)
	}
	return out
}

// LookupAll maps every value, fanning out across Threads workers. The result
// is index-aligned with vs.
func (p *Pipeline) LookupAll(ctx context.Context, vs []int64) ([]int64, error) {
	out := make([]int64, len(vs))
	err := p.forChunks(ctx, len(vs), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = p.Lookup(vs[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Run applies every stage to rs in order and returns a fresh RangeSet.
// It returns the context error if ctx is cancelled between stages or chunks.
func (p *Pipeline) Run(ctx context.Context, rs engine.RangeSet) (engine.RangeSet, error) {
	cur := rs.Clone()
	for i, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := p.splitStage(ctx, s, cur)
		if err != nil {
			return nil, err
		}
		if p.obs != nil {
			p.obs.ObserveStage(s.Name(), len(cur), len(next))
		}
		if p.cfg.CoalesceEvery > 0 && (i+1)%p.cfg.CoalesceEvery == 0 {
			next = next.Coalesce()
		}
		cur = next
	}
	return cur, nil
}

func (p *Pipeline) splitStage(ctx context.Context, s Splitter, in engine.RangeSet) (engine.RangeSet, error) {
	if p.cfg.Threads <= 1 || len(in) < 2 {
		out := make(engine.RangeSet, 0, len(in))
		for _, iv := range in {
			out = s.AppendSplit(out, iv)
		}
		return out, nil
	}

	// One slot per chunk keeps the output in the same order as a serial run.
	chunk := p.chunkSize(len(in))
	parts := make([]engine.RangeSet, (len(in)+chunk-1)/chunk)
	err := p.forChunks(ctx, len(in), func(lo, hi int) error {
		out := make(engine.RangeSet, 0, hi-lo)
		for _, iv := range in[lo:hi] {
			out = s.AppendSplit(out, iv)
		}
		parts[lo/chunk] = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	n := 0
	for _, part := range parts {
		n += len(part)
	}
	out := make(engine.RangeSet, 0, n)
	for _, part := range parts {
		out = append(out, part...)
	}
	return out, nil
}

// forChunks calls fn on consecutive [lo, hi) windows of [0, n), in parallel
// when Threads > 1.
func (p *Pipeline) forChunks(ctx context.Context, n int, fn func(lo, hi int) error) error {
	if p.cfg.Threads <= 1 || n < 2 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(0, n)
	}
	chunk := p.chunkSize(n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Threads)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}
	return g.Wait()
}

func (p *Pipeline) chunkSize(n int) int {
	if p.cfg.ChunkSize > 0 {
		return p.cfg.ChunkSize
	}
	// A few chunks per worker smooths out uneven fan-out.
	c := n / (p.cfg.Threads * 4)
	return max(c, 1)
}
