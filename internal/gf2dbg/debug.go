// Package gf2dbg gates expensive invariant checks behind an environment
// variable, the same way the reducer's authors gate theirs.
package gf2dbg

import (
	"fmt"
	"os"
)

var on = os.Getenv("LATNET_DEBUG") == "1"

// On reports whether invariant checking is enabled for this process.
func On() bool {
	return on
}

// Check panics with a formatted message if cond is false and checking is
// enabled. It is a no-op otherwise, so call sites pay nothing in the
// common case.
func Check(cond bool, format string, a ...any) {
	if on && !cond {
		panic(fmt.Sprintf("invariant violated: "+format, a...))
	}
}
