package schedule

// Deterministic shuffling for session titles. The seed is hashed with
// 32-bit FNV-1a, the hash drives an xorshift32 stream, and the stream
// drives a Fisher-Yates pass. Identical seeds always produce identical
// permutations, and the numeric constants are load-bearing: session
// calendars already shown to learners must not reorder on redeploy.

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619

	// xorshift cannot leave a zero state, so an all-zero hash falls back
	// to a fixed nonzero seed.
	zeroSeedFallback = 123456789
)

// seedToInt hashes per code point, not per byte, so multi-byte runes in a
// seed contribute one FNV round each.
func seedToInt(seed string) uint32 {
	h := uint32(fnvOffset32)
	for _, r := range seed {
		h ^= uint32(r)
		h *= fnvPrime32
	}
	return h
}

// rng is an xorshift32 generator yielding floats in [0, 1).
type rng struct {
	x uint32
}

func newRNG(seed string) *rng {
	x := seedToInt(seed)
	if x == 0 {
		x = zeroSeedFallback
	}
	return &rng{x: x}
}

func (r *rng) next() float64 {
	r.x ^= r.x << 13
	r.x ^= r.x >> 17
	r.x ^= r.x << 5
	return float64(r.x) / 4294967296.0
}

// ShuffleDeterministic returns a seeded permutation of items. The input
// slice is never mutated.
func ShuffleDeterministic(items []string, seed string) []string {
	out := make([]string, len(items))
	copy(out, items)
	r := newRNG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(r.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
