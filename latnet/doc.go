// Package latnet searches for low-discrepancy point sets — digital nets in
// base 2 and rank-1 integration lattices — for quasi-Monte Carlo
// integration. It provides the GF(2) t-value engine, the net and lattice
// constructions, the figure-of-merit evaluators, and the generic search
// driver (exhaustive, random, component-by-component, fast-CBC) that
// together pick the best generator under a chosen merit.
//
// The CLI and weight-file readers live outside this package; latnet
// exposes typed interfaces for them and consumes the results.
package latnet
