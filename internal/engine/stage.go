// internal/engine/stage.go
package engine

import (
	"fmt"
	"slices"
	"sort"
)

// Stage is one category-to-category table. Rules keep declaration order; a
// value covered by several rules takes the first one. Values covered by no
// rule map to themselves.
//
// A Stage is immutable after NewStage and safe for concurrent use.
type Stage struct {
	name  string
	rules []Rule

	// bySrc indexes rules by SrcStart. Only set when no two source ranges
	// overlap, which lets Split sweep instead of carving in declaration order.
	bySrc []int
}

// NewStage validates rules and builds a stage. The slice is copied.
func NewStage(name string, rules []Rule) (*Stage, error) {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("stage %q rule %d: %w", name, i, err)
		}
	}
	s := &Stage{name: name, rules: slices.Clone(rules)}

	idx := make([]int, len(s.rules))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return s.rules[idx[a]].SrcStart < s.rules[idx[b]].SrcStart
	})
	disjoint := true
	for k := 1; k < len(idx); k++ {
		if s.rules[idx[k]].SrcStart < s.rules[idx[k-1]].SrcEnd() {
			disjoint = false
			break
		}
	}
	if disjoint {
		s.bySrc = idx
	}
	return s, nil
}

// MustStage is NewStage for fixed tables in tests and examples.
func MustStage(name string, rules ...Rule) *Stage {
	s, err := NewStage(name, rules)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Stage) Name() string { return s.name }

// Rules returns a copy of the rules in declaration order.
func (s *Stage) Rules() []Rule { return slices.Clone(s.rules) }

// Disjoint reports whether the rules' source ranges are pairwise disjoint.
func (s *Stage) Disjoint() bool { return s.bySrc != nil }

// Lookup maps a single value: the first rule in declaration order that
// covers v shifts it, otherwise v is returned unchanged.
func (s *Stage) Lookup(v int64) int64 {
	for _, r := range s.rules {
		if r.Contains(v) {
			return v + r.Offset()
		}
	}
	return v
}
