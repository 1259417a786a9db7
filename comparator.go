package smartdiff

import "fmt"

// Reasons returned by Compare when both sides hold the same content or
// differ beyond kind & size
const (
	ReasonEqual          = "equal (order ignored, same top-level size)"
	ReasonContentDiffers = "content differs (order ignored)"
)

// Compare decides top-level equality of two documents, returning a verdict and
// a human-readable reason. checks run cheapest first so each failure mode
// gets a distinct diagnostic:
//
//  1. top-level kinds must match
//  2. top-level cardinality must match
//  3. canonical forms must be equal
func Compare(a, b Value) (equal bool, reason string) {
	if a.Kind() != b.Kind() {
		return false, fmt.Sprintf("top-level kinds differ: %s vs %s", a.Kind(), b.Kind())
	}

	if ca, cb := Cardinality(a), Cardinality(b); ca != cb {
		if a.Kind() == KindArray {
			return false, fmt.Sprintf("array length mismatch: %d vs %d", ca, cb)
		}
		return false, fmt.Sprintf("top-level size mismatch: %d vs %d", ca, cb)
	}

	if !Equal(a, b) {
		return false, ReasonContentDiffers
	}
	return true, ReasonEqual
}
