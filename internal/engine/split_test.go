package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTable(t *testing.T) {
	s := seedToSoil() // [50,98)+2, [98,100)-48

	cases := []struct {
		name string
		in   Interval
		want []Interval
	}{
		{"empty", Interval{Start: 10, End: 10}, nil},
		{"before all rules", Interval{Start: 0, End: 10}, []Interval{{0, 10}}},
		{"after all rules", Interval{Start: 100, End: 120}, []Interval{{100, 120}}},
		{"inside one rule", Interval{Start: 79, End: 93}, []Interval{{81, 95}}},
		{"starts before rule", Interval{Start: 40, End: 55}, []Interval{{40, 50}, {52, 57}}},
		{"crosses both rules", Interval{Start: 90, End: 110}, []Interval{{92, 100}, {50, 52}, {100, 110}}},
		{"covers everything", Interval{Start: 0, End: 200}, []Interval{{0, 50}, {52, 100}, {50, 52}, {100, 200}}},
		{"single value at boundary", Interval{Start: 98, End: 99}, []Interval{{50, 51}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Split(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Split(%v) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestSplitGapBetweenRules(t *testing.T) {
	s := MustStage("gappy",
		Rule{DestStart: 1000, SrcStart: 30, Length: 10},
		Rule{DestStart: 2000, SrcStart: 10, Length: 5},
	)
	got := s.Split(Interval{Start: 0, End: 50})
	want := []Interval{{0, 10}, {2000, 2005}, {15, 30}, {1000, 1010}, {40, 50}}
	require.Empty(t, cmp.Diff(want, got))
}

func TestSplitOverlapTieBreak(t *testing.T) {
	a := Rule{DestStart: 100, SrcStart: 0, Length: 10}
	b := Rule{DestStart: 200, SrcStart: 5, Length: 10}

	got := MustStage("ab", a, b).Split(Interval{Start: 0, End: 20})
	want := []Interval{{100, 110}, {205, 210}, {15, 20}}
	require.Empty(t, cmp.Diff(want, got))

	got = MustStage("ba", b, a).Split(Interval{Start: 0, End: 20})
	want = []Interval{{200, 210}, {100, 105}, {15, 20}}
	require.Empty(t, cmp.Diff(want, got))
}

func TestSplitAllFreshSet(t *testing.T) {
	s := seedToSoil()
	in := RangeSet{{Start: 79, End: 93}, {Start: 55, End: 68}}
	out := s.SplitAll(in)

	require.Len(t, out, 2)
	assert.Equal(t, RangeSet{{Start: 79, End: 93}, {Start: 55, End: 68}}, in, "input must not change")
	out[0].Start = -1
	assert.Equal(t, int64(79), in[0].Start, "output must not alias input")
}

// randomStage builds a stage of up to n rules; overlapping ones appear when
// allowOverlap is set.
func randomStage(rng *rand.Rand, n int, allowOverlap bool) *Stage {
	var rules []Rule
	cursor := rng.Int64N(50)
	for range rng.IntN(n + 1) {
		length := 1 + rng.Int64N(40)
		src := cursor + rng.Int64N(20)
		if allowOverlap && len(rules) > 0 && rng.IntN(3) == 0 {
			src = rules[rng.IntN(len(rules))].SrcStart + rng.Int64N(10)
		}
		rules = append(rules, Rule{DestStart: rng.Int64N(500) - 100, SrcStart: src, Length: length})
		cursor = src + length
	}
	rng.Shuffle(len(rules), func(i, j int) { rules[i], rules[j] = rules[j], rules[i] })
	return MustStage("random", rules...)
}

func TestSplitLengthConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 2023))
	for i := 0; i < 500; i++ {
		s := randomStage(rng, 8, i%2 == 1)
		start := rng.Int64N(300) - 50
		iv := Span(start, rng.Int64N(400))

		var total int64
		for _, piece := range s.Split(iv) {
			require.False(t, piece.Empty(), "empty piece from %v", iv)
			total += piece.Len()
		}
		require.Equal(t, iv.Len(), total, "stage %v interval %v", s.Rules(), iv)
	}
}

func TestSplitMatchesPointLookup(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 7))
	for i := 0; i < 200; i++ {
		s := randomStage(rng, 6, i%2 == 0)
		for j := 0; j < 50; j++ {
			v := rng.Int64N(400) - 50
			got := s.Split(Span(v, 1))
			require.Len(t, got, 1)
			require.Equal(t, Span(s.Lookup(v), 1), got[0], "value %d rules %v", v, s.Rules())
		}
	}
}

// The image of a wide interval, taken value by value, must equal the union
// of the split pieces.
func TestSplitImageMatchesEnumeration(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	for i := 0; i < 100; i++ {
		s := randomStage(rng, 6, i%3 == 0)
		iv := Span(rng.Int64N(100), rng.Int64N(150))

		want := map[int64]int{}
		for v := iv.Start; v < iv.End; v++ {
			want[s.Lookup(v)]++
		}
		got := map[int64]int{}
		for _, piece := range s.Split(iv) {
			for v := piece.Start; v < piece.End; v++ {
				got[v]++
			}
		}
		require.Equal(t, want, got)
	}
}
