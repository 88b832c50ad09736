// Package engine contains the range-remapping core: rules, stages, intervals
// and the split algorithm. It never imports pipeline, solver, writers, cli or
// app; keep it domain-only.
//
// External outputs must not depend on the internal shape here. Use pkg/api
// for stable wire types.
package engine
