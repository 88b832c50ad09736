// internal/engine/split.go
package engine

import "sort"

// identity is the offset applied to values no rule covers.
const identity int64 = 0

// Split maps iv through the stage. The pieces come from a partition of iv,
// so their lengths sum to iv.Len(). Empty pieces are never emitted.
func (s *Stage) Split(iv Interval) []Interval {
	return s.AppendSplit(nil, iv)
}

// AppendSplit is Split appending to dst.
func (s *Stage) AppendSplit(dst []Interval, iv Interval) []Interval {
	if iv.Empty() {
		return dst
	}
	if s.bySrc != nil {
		return s.sweep(dst, iv)
	}
	return s.carve(dst, iv)
}

// SplitAll maps every interval of rs and returns a fresh set.
func (s *Stage) SplitAll(rs RangeSet) RangeSet {
	out := make(RangeSet, 0, len(rs))
	for _, iv := range rs {
		out = s.AppendSplit(out, iv)
	}
	return out
}

// sweep walks iv left to right over rules sorted by source start. Gaps
// between rule overlaps go out with the identity offset.
func (s *Stage) sweep(dst []Interval, iv Interval) []Interval {
	// Source ends are sorted too when rules are disjoint.
	k := sort.Search(len(s.bySrc), func(k int) bool {
		return s.rules[s.bySrc[k]].SrcEnd() > iv.Start
	})
	cur := iv.Start
	for ; k < len(s.bySrc) && cur < iv.End; k++ {
		r := s.rules[s.bySrc[k]]
		if r.SrcStart >= iv.End {
			break
		}
		lo := max(cur, r.SrcStart)
		hi := min(iv.End, r.SrcEnd())
		dst = emit(dst, Interval{Start: cur, End: lo}, identity)
		dst = emit(dst, Interval{Start: lo, End: hi}, r.Offset())
		cur = hi
	}
	return emit(dst, Interval{Start: cur, End: iv.End}, identity)
}

// carve handles overlapping rules: each rule, in declaration order, claims
// what is still unclaimed inside its source range. That is first-match per
// value. Whatever no rule claimed keeps the identity offset.
func (s *Stage) carve(dst []Interval, iv Interval) []Interval {
	pending := []Interval{iv}
	for _, r := range s.rules {
		if len(pending) == 0 {
			break
		}
		src := r.Source()
		var rest []Interval
		for _, p := range pending {
			in := p.Intersect(src)
			if in.Empty() {
				rest = append(rest, p)
				continue
			}
			dst = emit(dst, in, r.Offset())
			if pre := p.Prefix(src); !pre.Empty() {
				rest = append(rest, pre)
			}
			if suf := p.Suffix(src); !suf.Empty() {
				rest = append(rest, suf)
			}
		}
		pending = rest
	}
	for _, p := range pending {
		dst = emit(dst, p, identity)
	}
	return dst
}

func emit(dst []Interval, piece Interval, offset int64) []Interval {
	if piece.Empty() {
		return dst
	}
	return append(dst, piece.Shift(offset))
}
