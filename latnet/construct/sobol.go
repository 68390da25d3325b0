package construct

import (
	"fmt"

	"latnetsearch/internal/gf2"
	"latnetsearch/latnet"
	"latnetsearch/latnet/rng"
)

// primitivePoly describes a primitive polynomial over GF(2) of the given
// degree, x^deg + coeffs[0]*x^(deg-1) + ... + coeffs[deg-2]*x + 1, in the
// coefficient ordering the Sobol direction-number recurrence consumes
// (coeffs[k-1] is a_k for k=1..deg-1).
type primitivePoly struct {
	degree int
	coeffs []int // a_1 .. a_{deg-1}, 0 or 1
}

// sobolTable holds a small hand-picked prefix of the standard Sobol
// primitive-polynomial table (Bratley & Fox 1988), enough to exercise a
// handful of low dimensions. Coordinate 0 is the classical van der Corput
// special case (degree 0, no table entry needed); coordinate n for n >= 1
// uses sobolTable[n-1].
var sobolTable = []primitivePoly{
	{degree: 1, coeffs: nil},       // x + 1
	{degree: 2, coeffs: []int{1}},  // x^2 + x + 1
	{degree: 3, coeffs: []int{0, 1}}, // x^3 + x + 1
	{degree: 3, coeffs: []int{1, 0}}, // x^3 + x^2 + 1
	{degree: 4, coeffs: []int{0, 0, 1}}, // x^4 + x + 1
}

// SobolValue is the generating value for one Sobol coordinate: which
// coordinate it was drawn for (selecting the primitive polynomial) and the
// initial direction numbers m_1..m_deg (each odd, m_j < 2^j), indexed
// 0-based here (M[0] is m_1). Two distinct coordinates can share the same
// primitive-polynomial degree, so Coord — not len(M) — is what selects the
// polynomial used by the recurrence.
type SobolValue struct {
	Coord int
	M     []int
}

// Sobol implements Method for the Sobol net construction. R is the number
// of binary digits in the point index (rows), C the number of output bits
// (columns) of each per-coordinate generating matrix.
type Sobol struct {
	r, c int
}

// NewSobol returns a Sobol construction producing (r, c)-shaped matrices.
func NewSobol(r, c int) (*Sobol, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("construct: sobol requires positive shape, got (%d,%d): %w", r, c, latnet.ErrConfiguration)
	}
	return &Sobol{r: r, c: c}, nil
}

func (s *Sobol) NRows() int { return s.r }
func (s *Sobol) NCols() int { return s.c }

func degreeForCoord(coord int) (int, *primitivePoly, error) {
	if coord == 0 {
		return 0, nil, nil
	}
	idx := coord - 1
	if idx >= len(sobolTable) {
		return 0, nil, fmt.Errorf("construct: sobol coordinate %d exceeds the built-in primitive-polynomial table (have %d entries): %w", coord, len(sobolTable), latnet.ErrConfiguration)
	}
	pp := sobolTable[idx]
	return pp.degree, &pp, nil
}

// CheckValue validates that every m_j is odd and m_j < 2^j (1-indexed
// j = index+1).
func (s *Sobol) CheckValue(v Value) error {
	sv, ok := v.(SobolValue)
	if !ok {
		return fmt.Errorf("construct: sobol value has wrong type %T: %w", v, latnet.ErrConfiguration)
	}
	deg, _, err := degreeForCoord(sv.Coord)
	if err != nil {
		return err
	}
	if len(sv.M) != deg {
		return fmt.Errorf("construct: sobol coordinate %d needs %d direction numbers, got %d: %w", sv.Coord, deg, len(sv.M), latnet.ErrConfiguration)
	}
	for i, m := range sv.M {
		j := i + 1
		if m%2 == 0 {
			return fmt.Errorf("construct: sobol m_%d=%d must be odd: %w", j, m, latnet.ErrConfiguration)
		}
		if m >= 1<<uint(j) {
			return fmt.Errorf("construct: sobol m_%d=%d must be < 2^%d: %w", j, m, j, latnet.ErrConfiguration)
		}
	}
	return nil
}

// directionNumbers runs the Sobol/Bratley-Fox recurrence out to s.r terms,
// seeded by the initial m_1..m_deg supplied in v.M.
func directionNumbers(deg int, pp *primitivePoly, seed []int, n int) ([]int, error) {
	m := make([]int, n)
	for i := 0; i < deg && i < n; i++ {
		m[i] = seed[i]
	}
	for j := deg + 1; j <= n; j++ {
		idx := j - 1 // 0-indexed slot for m_j
		acc := (1 << uint(deg)) * m[idx-deg]
		acc ^= m[idx-deg]
		for k := 1; k < deg; k++ {
			if pp.coeffs[k-1] == 1 {
				acc ^= (1 << uint(k)) * m[idx-k]
			}
		}
		m[idx] = acc
	}
	return m, nil
}

// MakeMatrix builds the generating matrix: row r (0-indexed, classical
// index r+1) is the binary representation of direction number
// v_{r+1} = m_{r+1} / 2^{r+1}, i.e. the (r+1) most-significant bits of m_{r+1}
// followed by zeros.
func (s *Sobol) MakeMatrix(v Value) (*gf2.Matrix, error) {
	if err := s.CheckValue(v); err != nil {
		return nil, err
	}
	sv := v.(SobolValue)
	deg, pp, err := degreeForCoord(sv.Coord)
	if err != nil {
		return nil, err
	}

	var m []int
	if deg == 0 {
		m = make([]int, s.r)
		for i := range m {
			m[i] = 1
		}
	} else {
		m, err = directionNumbers(deg, pp, sv.M, s.r)
		if err != nil {
			return nil, err
		}
	}

	out := gf2.NewMatrix(s.r, s.c)
	for row := 0; row < s.r; row++ {
		j := row + 1
		mj := m[row]
		for bitPos := 0; bitPos < j && bitPos < s.c; bitPos++ {
			// mj's bit (j-1-bitPos) becomes column bitPos (MSB first).
			shift := uint(j - 1 - bitPos)
			if mj&(1<<shift) != 0 {
				out.Set(row, bitPos, true)
			}
		}
	}
	return out, nil
}

// ValueSpaceForCoord returns the full cartesian product of valid
// direction-number tuples for coord, which is small enough to enumerate
// eagerly for the degrees in sobolTable.
func (s *Sobol) ValueSpaceForCoord(coord int) (ValueSpace, error) {
	deg, _, err := degreeForCoord(coord)
	if err != nil {
		return nil, err
	}
	if deg == 0 {
		return sliceValueSpace{values: []Value{SobolValue{Coord: coord, M: nil}}}, nil
	}
	var values []Value
	var rec func(prefix []int, j int)
	rec = func(prefix []int, j int) {
		if j > deg {
			cp := append([]int(nil), prefix...)
			values = append(values, SobolValue{Coord: coord, M: cp})
			return
		}
		for m := 1; m < 1<<uint(j); m += 2 {
			rec(append(prefix, m), j+1)
		}
	}
	rec(nil, 1)
	return sliceValueSpace{values: values}, nil
}

// SampleRandom draws a uniformly random valid odd m_j < 2^j for each j.
func (s *Sobol) SampleRandom(r *rng.RNG, coord int) (Value, error) {
	deg, _, err := degreeForCoord(coord)
	if err != nil {
		return nil, err
	}
	if deg == 0 {
		return SobolValue{Coord: coord, M: nil}, nil
	}
	m := make([]int, deg)
	for j := 1; j <= deg; j++ {
		half := 1 << uint(j-1)
		m[j-1] = 2*r.Intn(half) + 1
	}
	return SobolValue{Coord: coord, M: m}, nil
}

// Format renders the direction numbers as a bracketed list.
func (s *Sobol) Format(v Value) string {
	sv, ok := v.(SobolValue)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("sobol%v", sv.M)
}
