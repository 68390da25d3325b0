// Package filter implements MeritFilterList: per-level selectors and
// combiners that turn an embedded (multilevel) net's or lattice's per-level
// t-sequence — latnet/tvalue.Sequence's output — into a single scalar
// merit.
//
// The shape is a list of named per-stage values, each produced
// independently, folded into one result by a single combining step.
package filter

import (
	"fmt"

	"latnetsearch/latnet"
)

// Selector extracts a per-level quantity from a t-sequence. sequence[i] is
// the t-value at level mMin+1+i (latnet/tvalue.Sequence's convention);
// level is that same index.
type Selector func(sequence []int, level int) float64

// Combiner folds a slice of per-level selected values (in level order)
// into a single scalar merit.
type Combiner func(values []float64) float64

// IdentitySelector returns the t-value at level unchanged — the natural
// default: the filter list degenerates to "combine the raw per-level
// t-sequence".
func IdentitySelector(sequence []int, level int) float64 {
	return float64(sequence[level])
}

// CumulativeMaxSelector returns the running maximum t-value over levels
// 0..level, useful when a combiner wants a monotone per-level quantity
// (t-sequences are not monotone on their own: t(ℓ+1) can be as low as
// t(ℓ)-1, so a raw per-level reading can dip before climbing again).
func CumulativeMaxSelector(sequence []int, level int) float64 {
	max := sequence[0]
	for i := 1; i <= level; i++ {
		if sequence[i] > max {
			max = sequence[i]
		}
	}
	return float64(max)
}

// SumCombiner adds every selected per-level value.
func SumCombiner(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// MaxCombiner returns the largest selected per-level value (a worst-level
// merit, the multilevel analogue of a max-norm figure).
func MaxCombiner(values []float64) float64 {
	max := 0.0
	for i, v := range values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// WeightedSumCombiner returns a Combiner computing Σ weight[i]*values[i].
// len(weight) must equal the number of levels the resulting FilterList is
// ever applied to; the caller picks weight to match the embedding's level
// count when building the list, since Combiner itself carries no length
// to validate against.
func WeightedSumCombiner(weight []float64) Combiner {
	w := append([]float64(nil), weight...)
	return func(values []float64) float64 {
		sum := 0.0
		for i, v := range values {
			sum += w[i] * v
		}
		return sum
	}
}

// FilterList pairs one Selector applied independently at every level with
// one Combiner folding the selected values into a single merit.
type FilterList struct {
	selector Selector
	combiner Combiner
}

// NewFilterList validates that neither hook is nil.
func NewFilterList(selector Selector, combiner Combiner) (*FilterList, error) {
	if selector == nil || combiner == nil {
		return nil, fmt.Errorf("filter: selector and combiner must both be non-nil: %w", latnet.ErrConfiguration)
	}
	return &FilterList{selector: selector, combiner: combiner}, nil
}

// Apply runs the selector over every level of sequence and folds the
// results with the combiner.
func (fl *FilterList) Apply(sequence []int) (float64, error) {
	if len(sequence) == 0 {
		return 0, fmt.Errorf("filter: t-sequence must not be empty: %w", latnet.ErrConfiguration)
	}
	values := make([]float64, len(sequence))
	for level := range sequence {
		values[level] = fl.selector(sequence, level)
	}
	return fl.combiner(values), nil
}
