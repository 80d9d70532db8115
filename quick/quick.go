// Package quick wraps go-cmp for the two comparison shapes this engine's
// tests and assertion helpers need: full equality (Equal, used by quick's
// own tests and arb/integer_test.go) and a rendered diff for
// partial-match assertion messages (Diff, used by check.Result's
// assertExample/assertCounterExample on mismatch).
package quick

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equal compares got against want with go-cmp and fails t with a
// (-want +got) diff if they differ. Generics let it work on any
// comparable-by-structure type (Picks, scenario bindings, raw slices and
// maps) without per-type boilerplate at the call site.
func Equal[T any](t *testing.T, got, want T) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// Diff renders a (-want +got) diff between two arbitrary values without
// failing a test, for callers that need the text in a panic or log
// message rather than a t.Fatalf (check.Result's typed asserts use this
// outside of any *testing.T).
func Diff(want, got any) string {
	return cmp.Diff(want, got)
}
