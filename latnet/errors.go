package latnet

import "errors"

// Error kinds surfaced at the public boundary. ShapeMismatch and OutOfBounds
// are programming errors internal to the reducer and matrix layer; they are
// exported only so internal packages can wrap them with errors.Is, not
// because callers should branch on them.
var (
	// ErrConfiguration marks an impossible or unsupported combination of
	// inputs, e.g. a non-zero default weight on an order-dependent family,
	// or fast-CBC requested against a non-coordinate-uniform figure.
	ErrConfiguration = errors.New("latnet: configuration error")

	// ErrShapeMismatch marks disagreeing matrix/vector dimensions at a
	// boundary.
	ErrShapeMismatch = errors.New("latnet: shape mismatch")

	// ErrOutOfBounds marks an index into a structure beyond its size.
	ErrOutOfBounds = errors.New("latnet: index out of bounds")

	// ErrNoCandidate marks a search that exhausted its space without ever
	// producing a finite-merit net. It is the only terminal search
	// failure.
	ErrNoCandidate = errors.New("latnet: no candidate found")

	// ErrAborted marks a cooperative abort signalled by the evaluator's
	// progress hook. The search driver catches this itself; it is never a
	// search failure.
	ErrAborted = errors.New("latnet: aborted")

	// ErrNumericDomain marks a kernel argument outside its domain, e.g.
	// alpha <= 1 for the IAalpha kernel.
	ErrNumericDomain = errors.New("latnet: value outside numeric domain")
)
