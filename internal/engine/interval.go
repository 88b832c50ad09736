// internal/engine/interval.go
package engine

import "fmt"

// Interval is the half-open range [Start, End). Start >= End means empty.
type Interval struct {
	Start, End int64
}

// Span returns [start, start+length).
func Span(start, length int64) Interval {
	return Interval{Start: start, End: start + length}
}

func (i Interval) Len() int64 {
	if i.End <= i.Start {
		return 0
	}
	return i.End - i.Start
}

func (i Interval) Empty() bool { return i.Start >= i.End }

func (i Interval) Contains(v int64) bool { return i.Start <= v && v < i.End }

// Intersect returns the overlap of i and o; empty when they are disjoint.
func (i Interval) Intersect(o Interval) Interval {
	start := max(i.Start, o.Start)
	end := min(i.End, o.End)
	return Interval{Start: start, End: max(start, end)}
}

// Prefix returns the part of i lying strictly before o.
func (i Interval) Prefix(o Interval) Interval {
	end := min(i.End, o.Start)
	return Interval{Start: i.Start, End: max(i.Start, end)}
}

// Suffix returns the part of i lying at or after o.End.
func (i Interval) Suffix(o Interval) Interval {
	start := max(i.Start, o.End)
	return Interval{Start: start, End: max(start, i.End)}
}

// Shift translates i by n.
func (i Interval) Shift(n int64) Interval {
	return Interval{Start: i.Start + n, End: i.End + n}
}

func (i Interval) String() string { return fmt.Sprintf("[%d,%d)", i.Start, i.End) }
