package search

import (
	"fmt"
	"math"

	"latnetsearch/latnet"
)

// MinimumObserver tracks (bestCandidate, bestMerit) across a search and
// supplies the early-abortion hook every evaluator's AddCoordinate checks
// against. AbortHook and FailedSearchHook are optional logging callbacks
// (nil is a valid no-op) — a simple callback trait, no event-loop or
// observer-list machinery required.
type MinimumObserver struct {
	bestMerit float64
	bestDesc  string
	found     bool

	AbortHook        func(candidateDescription string)
	FailedSearchHook func()
}

// NewMinimumObserver returns an observer with no recorded candidate yet.
func NewMinimumObserver() *MinimumObserver {
	return &MinimumObserver{bestMerit: math.Inf(1)}
}

// BestMerit returns the merit to beat: +Inf until the first candidate is
// recorded. SearchDriver implementations pass this directly as an
// evaluator's bestSoFar.
func (o *MinimumObserver) BestMerit() float64 { return o.bestMerit }

// OnProgress is the evaluator's cooperative abort check: a partial merit
// that already reaches or exceeds the current best can never improve on
// it, so the caller should abort this candidate and move to the next.
func (o *MinimumObserver) OnProgress(partial float64) bool {
	return partial < o.bestMerit
}

// OnAbort notifies the observer that a candidate was abandoned mid-
// evaluation via early abortion. It never affects (bestCandidate,
// bestMerit); it exists purely for logging.
func (o *MinimumObserver) OnAbort(candidateDescription string) {
	if o.AbortHook != nil {
		o.AbortHook(candidateDescription)
	}
}

// Record offers a fully-evaluated candidate to the observer. It becomes the
// new best if it strictly improves on the current one; returns whether it
// did.
func (o *MinimumObserver) Record(candidateDescription string, merit float64) bool {
	if merit < o.bestMerit {
		o.bestMerit = merit
		o.bestDesc = candidateDescription
		o.found = true
		return true
	}
	return false
}

// Result returns the recorded best candidate and its merit, or
// latnet.ErrNoCandidate if the search never recorded a finite-merit
// candidate (the only terminal search failure).
func (o *MinimumObserver) Result() (string, float64, error) {
	if !o.found {
		if o.FailedSearchHook != nil {
			o.FailedSearchHook()
		}
		return "", 0, fmt.Errorf("search: exhausted candidates without a finite-merit net: %w", latnet.ErrNoCandidate)
	}
	return o.bestDesc, o.bestMerit, nil
}
