// Package testutil holds fixtures shared by package tests.
package testutil

import "almanac/internal/engine"

// ExampleInput is the canonical seven-stage puzzle example.
// Part one answers 35, part two answers 46.
const ExampleInput = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

const (
	ExamplePartOne int64 = 35
	ExamplePartTwo int64 = 46
)

// ExampleSeeds matches the seeds line of ExampleInput.
func ExampleSeeds() []int64 { return []int64{79, 14, 55, 13} }

// ExampleStages builds the stages of ExampleInput without going through the parser.
func ExampleStages() []*engine.Stage {
	r := func(d, s, l int64) engine.Rule { return engine.Rule{DestStart: d, SrcStart: s, Length: l} }
	return []*engine.Stage{
		engine.MustStage("seed-to-soil", r(50, 98, 2), r(52, 50, 48)),
		engine.MustStage("soil-to-fertilizer", r(0, 15, 37), r(37, 52, 2), r(39, 0, 15)),
		engine.MustStage("fertilizer-to-water", r(49, 53, 8), r(0, 11, 42), r(42, 0, 7), r(57, 7, 4)),
		engine.MustStage("water-to-light", r(88, 18, 7), r(18, 25, 70)),
		engine.MustStage("light-to-temperature", r(45, 77, 23), r(81, 45, 19), r(68, 64, 13)),
		engine.MustStage("temperature-to-humidity", r(0, 69, 1), r(1, 0, 69)),
		engine.MustStage("humidity-to-location", r(60, 56, 37), r(56, 93, 4)),
	}
}
