// internal/engine/rule.go
package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRule is returned for rules that cannot take part in a stage.
var ErrInvalidRule = errors.New("invalid rule")

// Rule maps the source range [SrcStart, SrcStart+Length) onto
// [DestStart, DestStart+Length) with a constant offset.
type Rule struct {
	DestStart int64
	SrcStart  int64
	Length    int64
}

// NewRule builds and validates a rule.
func NewRule(dest, src, length int64) (Rule, error) {
	r := Rule{DestStart: dest, SrcStart: src, Length: length}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Validate rejects non-positive lengths and ranges whose end or offset does
// not fit in an int64.
func (r Rule) Validate() error {
	if r.Length <= 0 {
		return fmt.Errorf("%w: length %d must be positive", ErrInvalidRule, r.Length)
	}
	if r.SrcStart > math.MaxInt64-r.Length {
		return fmt.Errorf("%w: source end %d+%d overflows", ErrInvalidRule, r.SrcStart, r.Length)
	}
	if r.DestStart > math.MaxInt64-r.Length {
		return fmt.Errorf("%w: destination end %d+%d overflows", ErrInvalidRule, r.DestStart, r.Length)
	}
	if (r.SrcStart > 0 && r.DestStart < math.MinInt64+r.SrcStart) ||
		(r.SrcStart < 0 && r.DestStart > math.MaxInt64+r.SrcStart) {
		return fmt.Errorf("%w: offset %d-%d overflows", ErrInvalidRule, r.DestStart, r.SrcStart)
	}
	return nil
}

func (r Rule) SrcEnd() int64 { return r.SrcStart + r.Length }

// Offset is the amount added to every covered source value.
func (r Rule) Offset() int64 { return r.DestStart - r.SrcStart }

// Contains reports whether v lies in the rule's source range.
func (r Rule) Contains(v int64) bool { return r.SrcStart <= v && v < r.SrcEnd() }

// Source returns the covered source range as an interval.
func (r Rule) Source() Interval { return Interval{Start: r.SrcStart, End: r.SrcEnd()} }
