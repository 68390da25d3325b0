package search

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"

	"latnetsearch/latnet"
	"latnetsearch/latnet/lattice"
	"latnetsearch/latnet/merit"
	"latnetsearch/latnet/weights"
)

// runLatticeFastCBC is the near-linear-per-coordinate component-by-
// component construction for a coordinate-uniform kernel figure over an
// Ordinary rank-1 lattice of prime size n: it picks the best next generator
// by evaluating every candidate's marginal merit contribution in one
// circular convolution over the lattice's multiplicative group, instead of
// runLatticeCBC's one full candidate evaluation per value.
//
// This only works because of two facts specific to this combination:
//
//  1. weights.Product's running state recurrence is linear in the new
//     coordinate's kernel row (latnet/weights/state.go's productState:
//     running *= 1 + γ_d·ω(x)), so the contribution of candidate z to the
//     step's merit splits into a z-independent part (the running sum
//     already fixed by z_1..z_{d-1}) plus a single term that depends on z
//     only through Σ_i running_i · ω(frac(i·z/n)).
//  2. For n prime, every nonzero point index i and every candidate
//     generator z is a power of a primitive root g mod n, so i·z mod n is
//     g^(a+b) mod n where i=g^a, z=g^b — turning the sum over i for every z
//     at once into a circular correlation of length n-1, computable via one
//     pair of DFTs instead of n-1 independent O(n) sums.
//
// Neither fact holds for the other weight shapes (their state recurrences
// are not linear in the new coordinate alone) or for a non-prime n (no
// primitive root), so those cases return latnet.ErrConfiguration and the
// caller falls back to runLatticeCBC.
func runLatticeFastCBC(method lattice.Method, dim int, fig LatticeFigure, obs *MinimumObserver, points []*big.Int) ([]lattice.Value, float64, error) {
	ord, ok := method.(*lattice.Ordinary)
	if !ok {
		return nil, 0, fmt.Errorf("search: fast CBC needs an Ordinary lattice, got %T: %w", method, latnet.ErrConfiguration)
	}
	kf, ok := fig.(*merit.KernelFigure)
	if !ok {
		return nil, 0, fmt.Errorf("search: fast CBC needs a coordinate-uniform kernel figure, got %T: %w", fig, latnet.ErrConfiguration)
	}
	prod, ok := kf.Weights().(*weights.Product)
	if !ok {
		return nil, 0, fmt.Errorf("search: fast CBC needs Product weights, got %T: %w", kf.Weights(), latnet.ErrConfiguration)
	}

	n := ord.N()
	if !n.IsInt64() {
		return nil, 0, fmt.Errorf("search: fast CBC needs a machine-word lattice size: %w", latnet.ErrConfiguration)
	}
	nInt := n.Int64()
	if nInt < 3 || !isPrimeInt64(nInt) {
		return nil, 0, fmt.Errorf("search: fast CBC's group-structure trick needs a prime lattice size, got %d: %w", nInt, latnet.ErrConfiguration)
	}
	if int64(kf.NumPoints()) != nInt {
		return nil, 0, fmt.Errorf("search: fast CBC needs the figure's point count (%d) to match the lattice size (%d): %w", kf.NumPoints(), nInt, latnet.ErrConfiguration)
	}

	g, err := primitiveRootMod(nInt)
	if err != nil {
		return nil, 0, err
	}
	groupOrder := int(nInt - 1)
	powOfG := make([]int64, groupOrder)
	cur := int64(1)
	for a := 0; a < groupOrder; a++ {
		powOfG[a] = cur
		cur = (cur * g) % nInt
	}

	kernel := kf.Kernel()
	omega := make([]float64, nInt)
	for m := int64(0); m < nInt; m++ {
		omega[m] = kernel.Eval(float64(m) / float64(nInt))
	}

	// running[i] is the per-point product-weight state accumulated from
	// the generators fixed so far (1 before any coordinate is chosen).
	running := make([]float64, nInt)
	for i := range running {
		running[i] = 1
	}

	q := kf.Q()
	prefix := make([]lattice.Value, 0, dim)
	stepMerit := 0.0
	for d := 0; d < dim; d++ {
		gammaD := prod.GammaAt(d)

		pPrime := make([]complex128, groupOrder)
		wPrime := make([]complex128, groupOrder)
		for a := 0; a < groupOrder; a++ {
			pPrime[a] = complex(running[powOfG[a]], 0)
			wPrime[a] = complex(omega[powOfG[a]], 0)
		}
		corr := circularCorrelation(pPrime, wPrime)

		sumRunning := 0.0
		for _, r := range running {
			sumRunning += r
		}
		zeroTerm := running[0] * omega[0]

		step := NewMinimumObserver()
		var bestZ int64
		var bestRunningUpdate func()
		for b := 0; b < groupOrder; b++ {
			z := powOfG[b]
			crossTerm := real(corr[b]) + zeroTerm
			candidateSum := sumRunning + gammaD*crossTerm
			partial := (candidateSum - float64(nInt)) / float64(nInt)
			m := math.Pow(math.Abs(partial), 1/q)

			candidate := append(append([]lattice.Value(nil), prefix...), lattice.OrdinaryValue{Z: big.NewInt(z)})
			if step.Record(formatLatticeCandidate(method, candidate), m) {
				bestZ = z
				zCopy := z
				bestRunningUpdate = func() {
					for i := range running {
						x := frac(float64(i) * float64(zCopy) / float64(nInt))
						running[i] *= 1 + gammaD*kernel.Eval(x)
					}
				}
			}
		}
		if _, _, err := step.Result(); err != nil {
			return nil, 0, fmt.Errorf("search: fast CBC found no finite-merit candidate at coordinate %d: %w", d, latnet.ErrNoCandidate)
		}
		bestRunningUpdate()
		prefix = append(prefix, lattice.OrdinaryValue{Z: big.NewInt(bestZ)})
		stepMerit = step.BestMerit()
	}
	obs.Record(formatLatticeCandidate(method, prefix), stepMerit)
	return prefix, stepMerit, nil
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}

// circularCorrelation returns corr[b] = Σ_a p[a]·w[(a+b) mod N], computed
// as a single pair of DFTs instead of len(p) independent O(N) sums.
func circularCorrelation(p, w []complex128) []complex128 {
	n := len(p)
	pRev := make([]complex128, n)
	pRev[0] = p[0]
	for a := 1; a < n; a++ {
		pRev[a] = p[n-a]
	}
	pf := dft(pRev)
	wf := dft(w)
	prod := make([]complex128, n)
	for i := range prod {
		prod[i] = pf[i] * wf[i]
	}
	return idft(prod)
}

// dft computes the length-len(x) discrete Fourier transform of x. When
// len(x) is a power of two it runs a direct radix-2 FFT; otherwise it falls
// back to Bluestein's chirp z-transform, which reduces an arbitrary-length
// DFT to a power-of-two convolution, so the whole computation stays
// O(n log n) regardless of n's factorization.
func dft(x []complex128) []complex128 {
	n := len(x)
	if n == 0 {
		return nil
	}
	if n&(n-1) == 0 {
		return fftPow2(append([]complex128(nil), x...))
	}
	return bluestein(x)
}

func idft(x []complex128) []complex128 {
	n := len(x)
	conj := make([]complex128, n)
	for i, v := range x {
		conj[i] = cmplx.Conj(v)
	}
	y := dft(conj)
	out := make([]complex128, n)
	scale := complex(float64(n), 0)
	for i, v := range y {
		out[i] = cmplx.Conj(v) / scale
	}
	return out
}

// bluestein computes the DFT of an arbitrary-length x via the chirp
// z-transform: X[k] = chirp[k] * IFFT(FFT(x[n]*chirp[n]) * FFT(conj(chirp)
// wrapped cyclically)), where chirp[n] = exp(-iπn²/N). The two FFTs run at
// a padded power-of-two length so the whole transform is O(n log n).
func bluestein(x []complex128) []complex128 {
	n := len(x)
	m := nextPow2(2*n - 1)

	chirp := make([]complex128, n)
	for i := 0; i < n; i++ {
		angle := -math.Pi * float64(i) * float64(i) / float64(n)
		chirp[i] = cmplx.Rect(1, angle)
	}

	a := make([]complex128, m)
	for i := 0; i < n; i++ {
		a[i] = x[i] * chirp[i]
	}
	b := make([]complex128, m)
	b[0] = cmplx.Conj(chirp[0])
	for i := 1; i < n; i++ {
		b[i] = cmplx.Conj(chirp[i])
		b[m-i] = b[i]
	}

	fa := fftPow2(a)
	fb := fftPow2(b)
	fc := make([]complex128, m)
	for i := range fc {
		fc[i] = fa[i] * fb[i]
	}
	c := ifftPow2(fc)

	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = c[i] * chirp[i]
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// fftPow2 is the textbook recursive radix-2 Cooley-Tukey FFT; len(a) must
// be a power of two.
func fftPow2(a []complex128) []complex128 {
	n := len(a)
	if n == 1 {
		return []complex128{a[0]}
	}
	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = a[2*i]
		odd[i] = a[2*i+1]
	}
	fe := fftPow2(even)
	fo := fftPow2(odd)
	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		t := cmplx.Rect(1, -2*math.Pi*float64(k)/float64(n)) * fo[k]
		out[k] = fe[k] + t
		out[k+n/2] = fe[k] - t
	}
	return out
}

func ifftPow2(a []complex128) []complex128 {
	n := len(a)
	conj := make([]complex128, n)
	for i, v := range a {
		conj[i] = cmplx.Conj(v)
	}
	y := fftPow2(conj)
	out := make([]complex128, n)
	scale := complex(float64(n), 0)
	for i, v := range y {
		out[i] = cmplx.Conj(v) / scale
	}
	return out
}

// primitiveRootMod returns the smallest primitive root of the multiplicative
// group mod the prime n.
func primitiveRootMod(n int64) (int64, error) {
	phi := n - 1
	factors := primeFactorsInt64(phi)
	for g := int64(2); g < n; g++ {
		isRoot := true
		for _, p := range factors {
			if modPow(g, phi/p, n) == 1 {
				isRoot = false
				break
			}
		}
		if isRoot {
			return g, nil
		}
	}
	return 0, fmt.Errorf("search: no primitive root found mod %d: %w", n, latnet.ErrConfiguration)
}

func primeFactorsInt64(n int64) []int64 {
	var out []int64
	for p := int64(2); p*p <= n; p++ {
		if n%p == 0 {
			out = append(out, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		out = append(out, n)
	}
	return out
}

func modPow(base, exp, mod int64) int64 {
	result := int64(1)
	base %= mod
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * base) % mod
		}
		exp >>= 1
		base = (base * base) % mod
	}
	return result
}

func isPrimeInt64(n int64) bool {
	if n < 2 {
		return false
	}
	for p := int64(2); p*p <= n; p++ {
		if n%p == 0 {
			return false
		}
	}
	return true
}
