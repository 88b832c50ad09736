// internal/engine/rangeset.go
package engine

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrNegativeLength is returned by FromPairs for a (start, length) pair with length < 0.
	ErrNegativeLength = errors.New("negative range length")
	// ErrRangeOverflow is returned when an interval end does not fit in an int64.
	ErrRangeOverflow = errors.New("range end overflows int64")
)

// RangeSet is a bag of half-open intervals flowing between stages. Order and
// overlap carry no meaning; Coalesce normalizes both.
type RangeSet []Interval

// FromPoints turns every value into the singleton interval [v, v+1).
// MaxInt64 has no representable end and is rejected.
func FromPoints(vs []int64) (RangeSet, error) {
	rs := make(RangeSet, 0, len(vs))
	for i, v := range vs {
		if v == math.MaxInt64 {
			return nil, fmt.Errorf("point %d (%d): %w", i, v, ErrRangeOverflow)
		}
		rs = append(rs, Span(v, 1))
	}
	return rs, nil
}

// FromPairs reads vs as consecutive (start, length) pairs. A trailing unpaired
// value is ignored and zero-length pairs are dropped. A pair whose end would
// pass MaxInt64 is an error rather than a silently empty interval.
func FromPairs(vs []int64) (RangeSet, error) {
	rs := make(RangeSet, 0, len(vs)/2)
	for i := 0; i+1 < len(vs); i += 2 {
		start, length := vs[i], vs[i+1]
		if length < 0 {
			return nil, fmt.Errorf("pair %d (%d %d): %w", i/2, start, length, ErrNegativeLength)
		}
		if length == 0 {
			continue
		}
		if start > math.MaxInt64-length {
			return nil, fmt.Errorf("pair %d (%d %d): %w", i/2, start, length, ErrRangeOverflow)
		}
		rs = append(rs, Span(start, length))
	}
	return rs, nil
}

// Len is the total number of values covered, counting overlaps twice.
func (rs RangeSet) Len() int64 {
	var n int64
	for _, iv := range rs {
		n += iv.Len()
	}
	return n
}

// Min returns the smallest start among non-empty intervals.
func (rs RangeSet) Min() (int64, bool) {
	var (
		m  int64
		ok bool
	)
	for _, iv := range rs {
		if iv.Empty() {
			continue
		}
		if !ok || iv.Start < m {
			m, ok = iv.Start, true
		}
	}
	return m, ok
}

func (rs RangeSet) Clone() RangeSet {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs)
}

// Coalesce returns a new sorted set where overlapping and adjacent intervals
// are merged and empty ones are gone. The receiver is left untouched.
func (rs RangeSet) Coalesce() RangeSet {
	out := make(RangeSet, 0, len(rs))
	for _, iv := range rs {
		if !iv.Empty() {
			out = append(out, iv)
		}
	}
	slices.SortFunc(out, func(a, b Interval) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	n := 0
	for _, iv := range out {
		if n > 0 && iv.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, iv.End)
			continue
		}
		out[n] = iv
		n++
	}
	return out[:n]
}
