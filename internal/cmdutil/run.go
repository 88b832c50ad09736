package cmdutil

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"almanac/internal/almanac"
	"almanac/internal/solver"
)

// SolveFiles loads each file, solves the requested parts, and streams the
// answers via send. It returns the number of answers sent and the first
// error encountered.
func SolveFiles(
	ctx context.Context,
	log *zap.Logger,
	sv *solver.Solver,
	files []string,
	parts []int,
	send func(solver.Answer) error,
) (int, error) {
	total := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		alm, err := almanac.Load(path)
		if err != nil {
			return total, err
		}
		CheckAlmanac(log.With(zap.String("source", path)), alm, slices.Contains(parts, 2))

		for _, part := range parts {
			a, err := sv.Solve(ctx, part, alm.Seeds, alm.Stages)
			if err != nil {
				return total, err
			}
			a.Source = path
			if err := send(a); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// CheckAlmanac logs what is unusual about alm without rejecting it.
func CheckAlmanac(log *zap.Logger, alm almanac.Almanac, pairs bool) {
	log.Debug("almanac loaded",
		zap.Int("seeds", len(alm.Seeds)),
		zap.Int("stages", len(alm.Stages)))

	if n := len(alm.Stages); n != almanac.StageCount {
		log.Warn("unexpected stage count",
			zap.Int("stages", n),
			zap.Int("want", almanac.StageCount))
	}
	if pairs && len(alm.Seeds)%2 == 1 {
		log.Warn("odd number of seeds; the last one is ignored in range mode",
			zap.Int64("seed", alm.Seeds[len(alm.Seeds)-1]))
	}
	for _, st := range alm.Stages {
		if !st.Disjoint() {
			log.Debug("stage has overlapping rules; first declared rule wins",
				zap.String("stage", st.Name()))
		}
	}
}
