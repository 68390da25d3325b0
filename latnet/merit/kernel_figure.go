package merit

import (
	"fmt"
	"math"

	"latnetsearch/latnet"
	"latnetsearch/latnet/weights"
)

// KernelFigure computes Merit(Lattice) = [(1/n) Σ_i Σ_P γ(P) Π_{j∈P}
// ω(x_{i,j})]^(1/q). One weights.WeightState is kept per point index i;
// AddCoordinate supplies a "kernel row" — ω(x_{i,j}) for every point i at
// the new coordinate j — and folds it into every point's running state
// via an update(state,coord,kernelRow) contract.
type KernelFigure struct {
	w      weights.Weights
	kernel Kernel
	q      float64
	n      int

	state     State
	states    []weights.WeightState
	dimension int
	bestSoFar float64
}

// NewKernelFigure requires q > 0 and n >= 1 points.
func NewKernelFigure(w weights.Weights, kernel Kernel, q float64, n int) (*KernelFigure, error) {
	if w == nil || kernel == nil {
		return nil, fmt.Errorf("merit: kernel figure needs non-nil weights and kernel: %w", latnet.ErrConfiguration)
	}
	if q <= 0 {
		return nil, fmt.Errorf("merit: kernel figure needs q > 0, got %g: %w", q, latnet.ErrConfiguration)
	}
	if n < 1 {
		return nil, fmt.Errorf("merit: kernel figure needs n >= 1 points, got %d: %w", n, latnet.ErrConfiguration)
	}
	return &KernelFigure{w: w, kernel: kernel, q: q, n: n, state: Idle}, nil
}

func (f *KernelFigure) CurrentState() State { return f.state }

// Kernel returns the one-dimensional kernel this figure evaluates against,
// exposed so a coordinate-uniform search driver (fast CBC) can sample it
// directly at arbitrary grid points without re-deriving it.
func (f *KernelFigure) Kernel() Kernel { return f.kernel }

// Q returns the norm exponent q.
func (f *KernelFigure) Q() float64 { return f.q }

// NumPoints returns n, the number of lattice points this figure evaluates.
func (f *KernelFigure) NumPoints() int { return f.n }

// Weights returns the weight shape backing this figure's per-point state
// recurrence.
func (f *KernelFigure) Weights() weights.Weights { return f.w }

// Start resets the evaluator to Building with one fresh weight-state per
// point, sized for a net/lattice of the given dimension.
func (f *KernelFigure) Start(dimension int, bestSoFar float64) error {
	states := make([]weights.WeightState, f.n)
	for i := range states {
		st, err := weights.NewWeightState(f.w, dimension)
		if err != nil {
			return err
		}
		states[i] = st
	}
	f.states = states
	f.dimension = dimension
	f.bestSoFar = bestSoFar
	f.state = Building
	return nil
}

// AddCoordinate folds in coordinate coord's values, one per point: for
// point i, values[i] must be x_{i,coord} in [0,1).
func (f *KernelFigure) AddCoordinate(coord int, values []float64) error {
	if f.state != Building {
		return fmt.Errorf("merit: AddCoordinate called while evaluator is %s, not Building: %w", f.state, latnet.ErrConfiguration)
	}
	if len(values) != f.n {
		return fmt.Errorf("merit: AddCoordinate got %d point values, want %d: %w", len(values), f.n, latnet.ErrShapeMismatch)
	}
	for i, x := range values {
		f.states[i].Update(coord, f.kernel.Eval(x))
	}
	partial := f.partialMerit()
	lowerBound := math.Pow(math.Abs(partial), 1/f.q)
	if lowerBound >= f.bestSoFar {
		f.state = Aborted
		return latnet.ErrAborted
	}
	return nil
}

func (f *KernelFigure) partialMerit() float64 {
	sum := 0.0
	for _, st := range f.states {
		sum += st.Query()
	}
	return sum / float64(f.n)
}

// Finish transitions Building to Complete and returns the final merit.
func (f *KernelFigure) Finish() (float64, error) {
	if f.state != Building {
		return 0, fmt.Errorf("merit: Finish called while evaluator is %s, not Building: %w", f.state, latnet.ErrConfiguration)
	}
	f.state = Complete
	return math.Pow(math.Abs(f.partialMerit()), 1/f.q), nil
}
