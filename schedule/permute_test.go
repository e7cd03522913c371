package schedule

import (
	"reflect"
	"sort"
	"testing"
)

func TestShuffleDeterministic(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	first := ShuffleDeterministic(items, "42-2025-01-01T08:00:00Z-vdaa-beginner")
	second := ShuffleDeterministic(items, "42-2025-01-01T08:00:00Z-vdaa-beginner")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed produced different orders: %v vs %v", first, second)
	}

	other := ShuffleDeterministic(items, "43-2025-01-01T08:00:00Z-vdaa-beginner")
	if reflect.DeepEqual(first, other) {
		t.Fatalf("different seeds produced identical order: %v", first)
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	before := make([]string, len(items))
	copy(before, items)

	ShuffleDeterministic(items, "any-seed")

	if !reflect.DeepEqual(items, before) {
		t.Fatalf("input mutated: %v", items)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	got := ShuffleDeterministic(items, "perm-check")

	sortedGot := make([]string, len(got))
	copy(sortedGot, got)
	sort.Strings(sortedGot)
	sortedIn := make([]string, len(items))
	copy(sortedIn, items)
	sort.Strings(sortedIn)
	if !reflect.DeepEqual(sortedGot, sortedIn) {
		t.Fatalf("result is not a permutation of the input: %v", got)
	}
}

func TestShuffleEdgeSizes(t *testing.T) {
	if got := ShuffleDeterministic(nil, "x"); len(got) != 0 {
		t.Fatalf("nil input should yield empty output, got %v", got)
	}
	if got := ShuffleDeterministic([]string{"only"}, "x"); len(got) != 1 || got[0] != "only" {
		t.Fatalf("single-element shuffle = %v", got)
	}
	if got := ShuffleDeterministic([]string{"a", "b"}, ""); len(got) != 2 {
		t.Fatalf("empty seed must still shuffle, got %v", got)
	}
}

func TestSeedToInt(t *testing.T) {
	// FNV-1a reference values for the 32-bit variant.
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"a", 0xe40c292c},
		{"foobar", 0xbf9cf968},
		// One hash round per code point: é folds in as U+00E9, not as
		// its two UTF-8 bytes.
		{"é", 1812687940},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			if got := seedToInt(tc.in); got != tc.want {
				t.Fatalf("seedToInt(%q) = %#x, want %#x", tc.in, got, tc.want)
			}
		})
	}
}

func TestRNGNeverSticksAtZero(t *testing.T) {
	r := &rng{x: zeroSeedFallback}
	for i := 0; i < 1000; i++ {
		v := r.next()
		if v < 0 || v >= 1 {
			t.Fatalf("step %d out of [0,1): %v", i, v)
		}
		if r.x == 0 {
			t.Fatalf("state hit zero at step %d", i)
		}
	}
}
