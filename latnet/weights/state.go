package weights

import "fmt"

// WeightState is an incremental per-weight-shape recurrence: one state per
// weight shape, updated one coordinate at a time as a coordinate-uniform
// kernel figure accumulates its running partial merit, queried for the
// partial merit seen so far without ever re-summing from scratch.
type WeightState interface {
	// Update folds in coordinate coord's kernel row value.
	Update(coord int, kernelRow float64)
	// Query returns the partial merit Σ_P γ(P) Π_{j∈P} kernelRow_j over
	// every projection P fully observed so far.
	Query() float64
}

// NewWeightState builds the state recurrence matching w's concrete shape.
// dimension bounds how many coordinates will ever be passed to Update,
// used to size the order-dependent DP tables up front.
func NewWeightState(w Weights, dimension int) (WeightState, error) {
	switch t := w.(type) {
	case *Product:
		return &productState{gamma: t.gamma, running: 1}, nil
	case *OrderDependent:
		return newOrderDependentState(t.gammaByOrder, nil, dimension), nil
	case *POD:
		return newOrderDependentState(t.order.gammaByOrder, t.product.gamma, dimension), nil
	case *ProjectionDependent:
		return newProjectionDependentState(t), nil
	case *Combined:
		return newCombinedState(t, dimension)
	default:
		return nil, fmt.Errorf("weights: no incremental state recurrence for weight shape %T", w)
	}
}

// productState implements the classical product-weight CBC recurrence:
// running *= (1 + γ_j * kernelRow_j) as each coordinate arrives; the
// partial merit is running-1 (the -1 removes the empty projection, which
// always contributes 1 to the expanded product but is excluded from the
// sum over nonempty projections).
type productState struct {
	gamma   []float64
	running float64
}

func (s *productState) Update(coord int, kernelRow float64) {
	g := 0.0
	if coord >= 0 && coord < len(s.gamma) {
		g = s.gamma[coord]
	}
	s.running *= 1 + g*kernelRow
}

func (s *productState) Query() float64 { return s.running - 1 }

// orderDependentState implements the elementary-symmetric-function DP
// shared by OrderDependent (productGamma == nil, each coordinate weighted
// 1) and POD (productGamma gives the per-coordinate γ_j factor folded into
// the kernel row before it enters the DP): e[k] accumulates the sum, over
// every k-subset of coordinates seen so far, of the product of their
// (possibly γ-weighted) kernel rows — the same recurrence Newton's
// identities use to build elementary symmetric polynomials incrementally.
type orderDependentState struct {
	gammaByOrder []float64
	productGamma []float64 // nil for plain OrderDependent
	e            []float64 // e[0..maxOrder], e[0] = 1 always
}

func newOrderDependentState(gammaByOrder, productGamma []float64, dimension int) *orderDependentState {
	maxOrder := len(gammaByOrder)
	if maxOrder > dimension+1 {
		maxOrder = dimension + 1
	}
	if maxOrder < 1 {
		maxOrder = 1
	}
	e := make([]float64, maxOrder)
	e[0] = 1
	return &orderDependentState{gammaByOrder: gammaByOrder, productGamma: productGamma, e: e}
}

func (s *orderDependentState) Update(coord int, kernelRow float64) {
	w := kernelRow
	if s.productGamma != nil {
		g := 0.0
		if coord >= 0 && coord < len(s.productGamma) {
			g = s.productGamma[coord]
		}
		w *= g
	}
	for k := len(s.e) - 1; k >= 1; k-- {
		s.e[k] += w * s.e[k-1]
	}
}

func (s *orderDependentState) Query() float64 {
	total := 0.0
	for k := 1; k < len(s.e) && k < len(s.gammaByOrder); k++ {
		total += s.gammaByOrder[k] * s.e[k]
	}
	return total
}

// projectionDependentState accumulates exactly the listed projections:
// each coordinate's kernel row is cached, and a projection contributes to
// the running total the moment its largest coordinate is observed (every
// other member must already be cached, since coordinates arrive in
// increasing order).
type projectionDependentState struct {
	pd      *ProjectionDependent
	byMax   map[int][]projectionEntry
	rows    map[int]float64
	running float64
}

type projectionEntry struct {
	coords []int
	gamma  float64
}

func newProjectionDependentState(pd *ProjectionDependent) *projectionDependentState {
	s := &projectionDependentState{pd: pd, byMax: make(map[int][]projectionEntry), rows: make(map[int]float64)}
	for key, g := range pd.table {
		if g == 0 {
			continue
		}
		coords := parseKey(key)
		if len(coords) == 0 {
			continue
		}
		max := coords[len(coords)-1]
		s.byMax[max] = append(s.byMax[max], projectionEntry{coords: coords, gamma: g})
	}
	return s
}

func parseKey(key string) []int {
	var out []int
	cur := 0
	have := false
	for _, r := range key {
		if r == ',' {
			if have {
				out = append(out, cur)
			}
			cur, have = 0, false
			continue
		}
		cur = cur*10 + int(r-'0')
		have = true
	}
	if have {
		out = append(out, cur)
	}
	return out
}

func (s *projectionDependentState) Update(coord int, kernelRow float64) {
	s.rows[coord] = kernelRow
	for _, entry := range s.byMax[coord] {
		prod := entry.gamma
		for _, j := range entry.coords {
			prod *= s.rows[j]
		}
		s.running += prod
	}
}

func (s *projectionDependentState) Query() float64 { return s.running }

// combinedState sums the partial merits of each part's own state.
type combinedState struct {
	parts []WeightState
}

func newCombinedState(c *Combined, dimension int) (*combinedState, error) {
	parts := make([]WeightState, 0, len(c.parts))
	for _, p := range c.parts {
		ps, err := NewWeightState(p, dimension)
		if err != nil {
			return nil, err
		}
		parts = append(parts, ps)
	}
	return &combinedState{parts: parts}, nil
}

func (s *combinedState) Update(coord int, kernelRow float64) {
	for _, p := range s.parts {
		p.Update(coord, kernelRow)
	}
}

func (s *combinedState) Query() float64 {
	total := 0.0
	for _, p := range s.parts {
		total += p.Query()
	}
	return total
}
