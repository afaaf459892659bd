package domain

import "fmt"

// assertf panics when an index the package derived itself fails to resolve.
// Such a failure is a defect, never an input error.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("tick: internal error: " + fmt.Sprintf(format, args...))
	}
}
