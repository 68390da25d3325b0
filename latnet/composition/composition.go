// Package composition enumerates compositions of k into s positive parts in
// an order whose successor differs from its predecessor by relocating
// exactly one unit from one part to another. This minimal-change property
// lets the t-value engine perform exactly one matrix row replacement per
// composition instead of re-reducing from scratch.
//
// The enumeration order is built from a simple peel-the-last-coordinate
// recursion (see the "Open Questions resolved" section of DESIGN.md for the
// derivation): composition k = (a_1,...,a_s) starts at (1,...,1,k-s+1) and
// each step either trades a unit between part s and part 1, or — once part
// s has been peeled off recursively — between the new last part and part 1
// or its own predecessor, alternating direction (a boustrophedon sweep) so
// every transition stays a single-unit move.
package composition

import (
	"fmt"

	"latnetsearch/latnet"
)

// Delta describes the single-unit move between two successive
// compositions: one unit leaves FromPart (whose value was FromUnit before
// the move) and arrives at ToPart (whose value is ToUnit after the move).
// Parts are numbered 1..s, matching the mathematical convention used
// throughout the t-value engine.
type Delta struct {
	FromPart, FromUnit int
	ToPart, ToUnit     int
}

// Maker enumerates compositions of k into s positive parts.
type Maker struct {
	k, s  int
	comps [][]int // precomputed, 1-indexed composition values
	idx   int
}

// New returns a Maker positioned at the lexicographically first
// composition (1,...,1,k-s+1).
func New(k, s int) (*Maker, error) {
	if s <= 0 {
		return nil, fmt.Errorf("composition: s must be positive, got %d: %w", s, latnet.ErrConfiguration)
	}
	if k < s {
		return nil, fmt.Errorf("composition: k=%d must be >= s=%d: %w", k, s, latnet.ErrConfiguration)
	}
	balls := enumerate(k-s, s)
	comps := make([][]int, len(balls))
	for i, b := range balls {
		row := make([]int, s)
		for j, v := range b {
			row[j] = v + 1
		}
		comps[i] = row
	}
	return &Maker{k: k, s: s, comps: comps, idx: 0}, nil
}

// Count returns the total number of compositions, C(k-1, s-1).
func (m *Maker) Count() int { return len(m.comps) }

// Current returns a copy of the composition at the current position.
func (m *Maker) Current() []int {
	return append([]int(nil), m.comps[m.idx]...)
}

// Advance moves to the next composition and reports whether one exists.
func (m *Maker) Advance() bool {
	if m.idx+1 >= len(m.comps) {
		return false
	}
	m.idx++
	return true
}

// Delta describes the single-unit move from the previous composition to
// the current one. ok is false at the initial position, before any
// Advance call.
func (m *Maker) Delta() (Delta, bool) {
	if m.idx == 0 {
		return Delta{}, false
	}
	prev := m.comps[m.idx-1]
	curr := m.comps[m.idx]
	var d Delta
	for i := range curr {
		switch curr[i] - prev[i] {
		case 1:
			d.ToPart = i + 1
			d.ToUnit = curr[i]
		case -1:
			d.FromPart = i + 1
			d.FromUnit = prev[i]
		case 0:
		default:
			panic("composition: successive compositions differ by more than one unit")
		}
	}
	return d, true
}

// enumerate returns all t-tuples of non-negative integers summing to n, in
// an order where successive tuples differ by moving one unit from one
// coordinate to another, starting at (0,...,0,n) and ending at (n,0,...,0).
func enumerate(n, t int) [][]int {
	if t == 1 {
		return [][]int{{n}}
	}
	out := make([][]int, 0, n+1)
	for v := n; v >= 0; v-- {
		sub := enumerate(n-v, t-1)
		if v%2 != 0 {
			sub = reversed(sub)
		}
		for _, pre := range sub {
			row := make([]int, t)
			copy(row, pre)
			row[t-1] = v
			out = append(out, row)
		}
	}
	return out
}

func reversed(in [][]int) [][]int {
	out := make([][]int, len(in))
	for i, row := range in {
		out[len(in)-1-i] = row
	}
	return out
}
