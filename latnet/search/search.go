// Package search implements the SearchDriver: four exploration strategies
// (Exhaustive, Random, CBC, FastCBC) that enumerate candidate generators
// from a construction's value spaces, evaluate each through a pluggable
// figure of merit, and track the best result under a MinimumObserver's
// early-abortion contract.
//
// Strategy is a plain enum: RunNetSearch and RunLatticeSearch each switch
// on it and dispatch to one run function per strategy for their
// construction kind.
package search

import "fmt"

// Strategy selects which SearchDriver exploration algorithm to run.
type Strategy int

const (
	Exhaustive Strategy = iota
	Random
	CBC
	FastCBC
)

func (s Strategy) String() string {
	switch s {
	case Exhaustive:
		return "exhaustive"
	case Random:
		return "random"
	case CBC:
		return "cbc"
	case FastCBC:
		return "fastcbc"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// RandomOpts parameterizes the Random strategy: nbTries candidates drawn
// from a seed, deterministically for a fixed seed.
type RandomOpts struct {
	NBTries int
	Seed    int64
}
