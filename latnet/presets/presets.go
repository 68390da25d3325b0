// Package presets collects named, validated parameter bundles for common
// search configurations instead of making every caller assemble one by
// hand.
package presets

import (
	"fmt"

	"latnetsearch/latnet"
	"latnetsearch/latnet/weights"
)

// Config bundles the parameters a search run needs: construction kind,
// embedding, size, dimension, interlacing, and the figure-of-merit weights.
type Config struct {
	Construction string // "sobol" | "polynomial" | "explicit"
	Embedding    string // "unilevel" | "multilevel"
	M            int    // size parameter: n = 2^M points
	Dim          int
	Interlacing  int
	Weights      weights.Weights
	Alpha        float64
	NormQ        float64
}

// NewConfig validates a hand-assembled Config.
func NewConfig(construction, embedding string, m, dim, interlacing int, w weights.Weights, alpha, normQ float64) (Config, error) {
	switch construction {
	case "sobol", "polynomial", "explicit":
	default:
		return Config{}, fmt.Errorf("presets: unknown construction %q: %w", construction, latnet.ErrConfiguration)
	}
	switch embedding {
	case "unilevel", "multilevel":
	default:
		return Config{}, fmt.Errorf("presets: unknown embedding %q: %w", embedding, latnet.ErrConfiguration)
	}
	if m <= 0 {
		return Config{}, fmt.Errorf("presets: m must be positive, got %d: %w", m, latnet.ErrConfiguration)
	}
	if dim <= 0 {
		return Config{}, fmt.Errorf("presets: dim must be positive, got %d: %w", dim, latnet.ErrConfiguration)
	}
	if interlacing <= 0 {
		return Config{}, fmt.Errorf("presets: interlacing must be positive, got %d: %w", interlacing, latnet.ErrConfiguration)
	}
	if w == nil {
		return Config{}, fmt.Errorf("presets: weights must not be nil: %w", latnet.ErrConfiguration)
	}
	if normQ < 1 {
		return Config{}, fmt.Errorf("presets: normQ must be >= 1, got %g: %w", normQ, latnet.ErrConfiguration)
	}
	return Config{
		Construction: construction,
		Embedding:    embedding,
		M:            m,
		Dim:          dim,
		Interlacing:  interlacing,
		Weights:      w,
		Alpha:        alpha,
		NormQ:        normQ,
	}, nil
}

// SmallSobolUnilevel returns a quick smoke-test configuration: a small
// unilevel Sobol search over 3 dimensions at m=8, unweighted product
// weights, t-value-style alpha.
func SmallSobolUnilevel() (Config, error) {
	w, err := weights.NewProduct([]float64{1, 1, 1})
	if err != nil {
		return Config{}, err
	}
	return NewConfig("sobol", "unilevel", 8, 3, 1, w, 2, 2)
}

// MediumPolynomialMultilevel returns a mid-sized multilevel configuration
// for the Polynomial digital net construction with order-dependent weights.
func MediumPolynomialMultilevel() (Config, error) {
	w, err := weights.NewOrderDependent([]float64{0, 1, 1, 1})
	if err != nil {
		return Config{}, err
	}
	return NewConfig("polynomial", "multilevel", 16, 4, 1, w, 2, 2)
}

// ExplicitCBCBaseline returns a small configuration for exercising the CBC
// strategy over explicit nets. Exhaustive search rejects the Explicit
// construction (its value space is unbounded), so this preset cannot be
// cross-checked against it.
func ExplicitCBCBaseline() (Config, error) {
	w, err := weights.NewProduct([]float64{1, 0.5, 0.25})
	if err != nil {
		return Config{}, err
	}
	return NewConfig("explicit", "unilevel", 6, 3, 1, w, 2, 2)
}
