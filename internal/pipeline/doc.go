// Package pipeline runs a RangeSet (or single values) through an ordered
// chain of stages, optionally splitting the intervals of one stage across
// worker goroutines and coalescing between stages.
//
// The only contract a stage has to meet is Splitter. This keeps the pipeline
// swappable and testable.
package pipeline
