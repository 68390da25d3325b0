package merit

import (
	"fmt"
	"math"

	"latnetsearch/latnet"
	"latnetsearch/latnet/weights"
)

// NormBound is a closed-form weighted sum over projections. No search
// strategy calls it: runLatticeFastCBC does not prune candidates with it.
// Rather than
// re-deriving product/order-dependent/projection-dependent/POD recurrences a
// second time, it reuses latnet/weights.WeightState directly: each weight
// shape's state recurrence already computes exactly a weighted sum over
// dimensions, so all four specializations come for free
// (linear for product, linear-per-order for order-dependent, explicit
// enumeration for projection-dependent, two-layer DP for POD). The bound
// folds in the kernel's value at x=0 (an extreme of every kernel in this
// package except BalphaKernel with odd α >= 3, whose value there is 0) as
// every coordinate's
// "row", rather than a per-point row, giving a single scalar upper bound
// independent of the candidate's actual points.
type NormBound struct {
	w      weights.Weights
	kernel Kernel
	q      float64
}

// NewNormBound requires q > 0.
func NewNormBound(w weights.Weights, kernel Kernel, q float64) (*NormBound, error) {
	if w == nil || kernel == nil {
		return nil, fmt.Errorf("merit: norm bound needs non-nil weights and kernel: %w", latnet.ErrConfiguration)
	}
	if q <= 0 {
		return nil, fmt.Errorf("merit: norm bound needs q > 0, got %g: %w", q, latnet.ErrConfiguration)
	}
	return &NormBound{w: w, kernel: kernel, q: q}, nil
}

// Bound returns the closed-form bound for a candidate of the given
// dimension.
func (nb *NormBound) Bound(dimension int) (float64, error) {
	if dimension < 0 {
		return 0, fmt.Errorf("merit: norm bound dimension must be >= 0, got %d: %w", dimension, latnet.ErrConfiguration)
	}
	st, err := weights.NewWeightState(nb.w, dimension)
	if err != nil {
		return 0, err
	}
	row := nb.kernel.Eval(0)
	for coord := 0; coord < dimension; coord++ {
		st.Update(coord, row)
	}
	return math.Pow(math.Abs(st.Query()), 1/nb.q), nil
}
