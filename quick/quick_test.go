package quick

import (
	"testing"
)

// TestEqual exercises Equal against the shapes this engine actually
// compares: bound-test-case maps, generated slices, and small structs,
// rather than generic textbook values.
func TestEqual(t *testing.T) {
	type pick struct {
		Value    int
		Original any
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"equal picks", pick{Value: 7, Original: 7}, pick{Value: 7, Original: 7}},
		{"equal bound test cases", map[string]any{"a": int64(3), "b": "x"}, map[string]any{"a": int64(3), "b": "x"}},
		{"equal slices", []int64{1, 2, 3}, []int64{1, 2, 3}},
		{"equal empty slices", []int64{}, []int64{}},
		{"equal nil values", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Equal(t, tt.got, tt.want)
		})
	}
}

// TestDiff exercises Diff's two outcomes: an empty string for equal
// values, and a non-empty rendered diff when values disagree, the shape
// check.Result's assertion helpers depend on.
func TestDiff(t *testing.T) {
	t.Run("no diff for equal values", func(t *testing.T) {
		if d := Diff(map[string]any{"a": 1}, map[string]any{"a": 1}); d != "" {
			t.Fatalf("expected empty diff, got %q", d)
		}
	})

	t.Run("diff reports a mismatched field", func(t *testing.T) {
		d := Diff(map[string]any{"a": 1}, map[string]any{"a": 2})
		if d == "" {
			t.Fatal("expected a non-empty diff for mismatched values")
		}
	})

	t.Run("diff reports a missing field", func(t *testing.T) {
		want := map[string]any{"a": 1, "b": 2}
		got := map[string]any{"a": 1}
		if d := Diff(want, got); d == "" {
			t.Fatal("expected a non-empty diff for a missing field")
		}
	})
}
