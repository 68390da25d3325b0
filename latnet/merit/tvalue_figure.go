package merit

import (
	"fmt"
	"math"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/tvalue"
	"latnetsearch/latnet/weights"
)

// TValueFigure computes Merit(Net) = [Σ_P γ(P)^q ·
// t(P)^q]^(1/q), t(P) = C - smallestFullRank(P) from the TValueEngine
// restricted to the matrices in projection P. Coordinates are added one at
// a time (the shape CBC needs); each new coordinate k closes
// exactly the projections that contain k and are otherwise a subset of
// {0..k-1} — every projection is therefore summed exactly once, the
// instant its largest coordinate arrives, mirroring
// latnet/weights/state.go's projection-dependent recurrence.
type TValueFigure struct {
	w weights.Weights
	q float64

	state     State
	matrices  []*gf2.Matrix
	partial   float64 // running Σ γ(P)^q t(P)^q over closed projections
	bestSoFar float64
}

// NewTValueFigure requires q > 0 (q = ∞ is represented by a very large but
// finite q at this layer; true max-norm handling belongs to a caller that
// wants it, since ^(1/q) degenerates at q=∞).
func NewTValueFigure(w weights.Weights, q float64) (*TValueFigure, error) {
	if w == nil {
		return nil, fmt.Errorf("merit: weighted t-value figure needs non-nil weights: %w", latnet.ErrConfiguration)
	}
	if q <= 0 {
		return nil, fmt.Errorf("merit: weighted t-value figure needs q > 0, got %g: %w", q, latnet.ErrConfiguration)
	}
	return &TValueFigure{w: w, q: q, state: Idle}, nil
}

func (f *TValueFigure) CurrentState() State { return f.state }

// Start resets the evaluator to Building, ready to receive matrices via
// AddCoordinate. bestSoFar is the merit to beat; pass math.Inf(1) if
// nothing has been found yet.
func (f *TValueFigure) Start(bestSoFar float64) {
	f.state = Building
	f.matrices = nil
	f.partial = 0
	f.bestSoFar = bestSoFar
}

// AddCoordinate appends the generating matrix for the next coordinate and
// folds in every newly-closed projection's contribution. Returns
// latnet.ErrAborted (and transitions to Aborted) if the running partial
// sum already proves the final merit cannot beat bestSoFar.
func (f *TValueFigure) AddCoordinate(m *gf2.Matrix) error {
	if f.state != Building {
		return fmt.Errorf("merit: AddCoordinate called while evaluator is %s, not Building: %w", f.state, latnet.ErrConfiguration)
	}
	f.matrices = append(f.matrices, m)
	newCoord := len(f.matrices) - 1
	maxCard := f.w.MaxCardinality()
	if maxCard > len(f.matrices) {
		maxCard = len(f.matrices)
	}

	others := make([]int, 0, newCoord)
	for i := 0; i < newCoord; i++ {
		others = append(others, i)
	}

	for size := 1; size <= maxCard; size++ {
		if err := f.closeProjectionsOfSize(newCoord, others, size-1); err != nil {
			return err
		}
	}

	lowerBound := math.Pow(f.partial, 1/f.q)
	if lowerBound >= f.bestSoFar {
		f.state = Aborted
		return latnet.ErrAborted
	}
	return nil
}

// closeProjectionsOfSize enumerates every k-subset of others, combines
// it with newCoord, and folds in that projection's contribution if its
// weight is nonzero.
func (f *TValueFigure) closeProjectionsOfSize(newCoord int, others []int, k int) error {
	combo := make([]int, 0, k)
	var rec func(start int) error
	rec = func(start int) error {
		if len(combo) == k {
			projection := append(append([]int(nil), combo...), newCoord)
			return f.foldProjection(projection)
		}
		for i := start; i < len(others); i++ {
			combo = append(combo, others[i])
			if err := rec(i + 1); err != nil {
				return err
			}
			combo = combo[:len(combo)-1]
		}
		return nil
	}
	return rec(0)
}

func (f *TValueFigure) foldProjection(projection []int) error {
	gamma := f.w.Gamma(projection)
	if gamma == 0 {
		return nil
	}
	subset := make([]*gf2.Matrix, len(projection))
	for i, idx := range projection {
		subset[i] = f.matrices[idx]
	}
	t, err := tvalue.Single(subset)
	if err != nil {
		return fmt.Errorf("merit: computing t-value for projection %v: %w", projection, err)
	}
	f.partial += math.Pow(gamma, f.q) * math.Pow(float64(t), f.q)
	return nil
}

// Finish transitions Building to Complete and returns the final merit.
func (f *TValueFigure) Finish() (float64, error) {
	if f.state != Building {
		return 0, fmt.Errorf("merit: Finish called while evaluator is %s, not Building: %w", f.state, latnet.ErrConfiguration)
	}
	f.state = Complete
	return math.Pow(f.partial, 1/f.q), nil
}
