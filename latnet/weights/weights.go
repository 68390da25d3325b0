// Package weights implements the weight-shape taxonomy that parameterizes a
// FigureOfMerit: product, order-dependent, POD, projection-dependent, and
// combined. Each shape is a recognized tagged variant with its own
// MaxCardinality and Gamma(projection) behavior; unknown shapes are a
// configuration error at construction, never a silent default.
package weights

import (
	"fmt"
	"sort"

	"latnetsearch/latnet"
)

// Weights is the common capability every recognized shape implements.
type Weights interface {
	// Gamma returns γ(P) for a projection P, given as a sorted slice of
	// 0-based coordinate indices.
	Gamma(projection []int) float64
	// MaxCardinality returns the largest projection size a FigureOfMerit
	// sums up to. For Product it is the largest 1-based coordinate with a
	// positive γ_j, even where a zero γ at a lower coordinate makes every
	// projection of that size weigh 0.
	MaxCardinality() int
}

// Product is γ(P) = Π_{j in P} γ_j.
type Product struct {
	gamma []float64 // gamma[j] for coordinate j, 0-indexed
}

// NewProduct validates that no default (trailing, implicitly infinite)
// weight is positive: gamma must be the complete, finite list of per-
// coordinate weights.
func NewProduct(gamma []float64) (*Product, error) {
	for i, g := range gamma {
		if g < 0 {
			return nil, fmt.Errorf("weights: product gamma[%d]=%g is negative: %w", i, g, latnet.ErrConfiguration)
		}
	}
	return &Product{gamma: append([]float64(nil), gamma...)}, nil
}

func (p *Product) Gamma(projection []int) float64 {
	v := 1.0
	for _, j := range projection {
		if j < 0 || j >= len(p.gamma) {
			return 0
		}
		v *= p.gamma[j]
	}
	return v
}

// GammaAt returns γ_j for coordinate j (0 if out of range), the per-
// coordinate factor a coordinate-uniform search driver's fast CBC
// convolution needs directly rather than through a projection.
func (p *Product) GammaAt(coord int) float64 {
	if coord < 0 || coord >= len(p.gamma) {
		return 0
	}
	return p.gamma[coord]
}

func (p *Product) MaxCardinality() int {
	max := 0
	for j, g := range p.gamma {
		if g > 0 && j+1 > max {
			max = j + 1
		}
	}
	return max
}

// OrderDependent is γ(P) = Γ_{|P|}.
type OrderDependent struct {
	gammaByOrder []float64 // gammaByOrder[k] for |P|=k, 1-indexed (index 0 unused)
}

// NewOrderDependent validates no implicit default beyond the given slice.
func NewOrderDependent(gammaByOrder []float64) (*OrderDependent, error) {
	for k, g := range gammaByOrder {
		if g < 0 {
			return nil, fmt.Errorf("weights: order-dependent Gamma[%d]=%g is negative: %w", k, g, latnet.ErrConfiguration)
		}
	}
	return &OrderDependent{gammaByOrder: append([]float64(nil), gammaByOrder...)}, nil
}

func (o *OrderDependent) Gamma(projection []int) float64 {
	k := len(projection)
	if k >= len(o.gammaByOrder) {
		return 0
	}
	return o.gammaByOrder[k]
}

func (o *OrderDependent) MaxCardinality() int {
	max := 0
	for k, g := range o.gammaByOrder {
		if g > 0 && k > max {
			max = k
		}
	}
	return max
}

// POD is γ(P) = Γ_{|P|} · Π_{j in P} γ_j.
type POD struct {
	order   *OrderDependent
	product *Product
}

// NewPOD combines an order factor and a product factor.
func NewPOD(gammaByOrder, gamma []float64) (*POD, error) {
	o, err := NewOrderDependent(gammaByOrder)
	if err != nil {
		return nil, err
	}
	p, err := NewProduct(gamma)
	if err != nil {
		return nil, err
	}
	return &POD{order: o, product: p}, nil
}

func (p *POD) Gamma(projection []int) float64 {
	return p.order.Gamma(projection) * p.product.Gamma(projection)
}

func (p *POD) MaxCardinality() int {
	oc, pc := p.order.MaxCardinality(), p.product.MaxCardinality()
	if oc < pc {
		return oc
	}
	return pc
}

// ProjectionDependent gives γ(P) explicitly for a finite list of
// projections; 0 for every other projection.
type ProjectionDependent struct {
	table map[string]float64
	maxCd int
}

// NewProjectionDependent builds the table from explicit (projection,
// weight) pairs. Keys are stored as given, so they must already be in
// Key's sorted form; Gamma passes its projection through Key, so lookup is
// order-independent.
func NewProjectionDependent(entries map[string]float64) (*ProjectionDependent, error) {
	// entries keys are pre-canonicalized via Key(projection); validated here
	// only for non-negativity, since the caller already owns canonicalization.
	table := make(map[string]float64, len(entries))
	maxCd := 0
	for k, g := range entries {
		if g < 0 {
			return nil, fmt.Errorf("weights: projection-dependent gamma for %q is negative: %w", k, latnet.ErrConfiguration)
		}
		table[k] = g
		if card := cardinalityOfKey(k); g > 0 && card > maxCd {
			maxCd = card
		}
	}
	return &ProjectionDependent{table: table, maxCd: maxCd}, nil
}

func (pd *ProjectionDependent) Gamma(projection []int) float64 {
	return pd.table[Key(projection)]
}

func (pd *ProjectionDependent) MaxCardinality() int { return pd.maxCd }

// Key canonicalizes a projection (sorted ascending, comma-joined) so it can
// be used as a map key regardless of input order.
func Key(projection []int) string {
	sorted := append([]int(nil), projection...)
	sort.Ints(sorted)
	s := ""
	for i, j := range sorted {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(j)
	}
	return s
}

func cardinalityOfKey(key string) int {
	if key == "" {
		return 0
	}
	count := 1
	for _, r := range key {
		if r == ',' {
			count++
		}
	}
	return count
}

// Combined sums the γ of a list of weight shapes.
type Combined struct {
	parts []Weights
}

// NewCombined requires at least one part.
func NewCombined(parts []Weights) (*Combined, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("weights: combined needs at least one part: %w", latnet.ErrConfiguration)
	}
	return &Combined{parts: append([]Weights(nil), parts...)}, nil
}

func (c *Combined) Gamma(projection []int) float64 {
	sum := 0.0
	for _, p := range c.parts {
		sum += p.Gamma(projection)
	}
	return sum
}

func (c *Combined) MaxCardinality() int {
	max := 0
	for _, p := range c.parts {
		if mc := p.MaxCardinality(); mc > max {
			max = mc
		}
	}
	return max
}
