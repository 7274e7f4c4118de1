// Package seed derives per-entity seeds and opens deterministic
// pseudo-random streams from them.
package seed

import "strconv"

const (
	// Multiplier and increment of the mixing step. Changing them changes
	// every generated catalog.
	Multiplier = 1103515245
	Increment  = 12345

	// LikesOffset is added to the base seed before deriving the likes seed
	// so that likes never correlate with the rest of the song.
	LikesOffset = 999999
)

// Combine mixes a base seed with a salt (usually an item index). The
// arithmetic wraps modulo 2^32.
func Combine(base, salt int64) uint32 {
	return uint32(base)*Multiplier + uint32(salt)*Increment
}

// New opens a stream seeded with the decimal representation of v.
func New(v uint32) *Rand {
	return NewString(strconv.FormatUint(uint64(v), 10))
}

// For is a shortcut for New(Combine(base, salt)).
func For(base, salt int64) *Rand {
	return New(Combine(base, salt))
}
