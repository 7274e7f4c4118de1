package seed

import (
	"math"
	"unicode/utf16"
)

// ARC4 stream parameters, compatible with the seedrandom javascript
// library so catalogs generated by either implementation match.
const (
	width  = 256
	mask   = width - 1
	chunks = 6
	digits = 52
)

var (
	startDenom   = math.Pow(width, chunks)
	significance = math.Pow(2, digits)
	overflow     = significance * 2
)

// Rand is a deterministic, non-secure stream of floats in [0, 1).
// It is not safe for concurrent use; open one per generation.
type Rand struct {
	s    [width]uint8
	i, j uint8
}

// NewString opens a stream keyed by an arbitrary string.
func NewString(key string) *Rand {
	k := mixKey(key)
	if len(k) == 0 {
		k = []int{0}
	}
	r := &Rand{}
	for i := range r.s {
		r.s[i] = uint8(i)
	}
	var j int
	for i := 0; i < width; i++ {
		t := r.s[i]
		j = mask & (j + k[i%len(k)] + int(t))
		r.s[i] = r.s[j]
		r.s[j] = t
	}
	// Drop the first bytes of keystream, they leak key material.
	r.next(width)
	return r
}

func mixKey(key string) []int {
	units := utf16.Encode([]rune(key))
	var k []int
	var smear int32
	for j, c := range units {
		idx := j & mask
		if idx < len(k) {
			smear ^= int32(k[idx] * 19)
		}
		v := mask & (int(smear) + int(c))
		if idx < len(k) {
			k[idx] = v
		} else {
			k = append(k, v)
		}
	}
	return k
}

// next returns the following count bytes of keystream as a big-endian
// integer. Only the low 64 bits are kept.
func (r *Rand) next(count int) uint64 {
	var v uint64
	i, j := r.i, r.j
	for ; count > 0; count-- {
		i++
		t := r.s[i]
		j += t
		r.s[i] = r.s[j]
		r.s[j] = t
		v = v<<8 | uint64(r.s[r.s[i]+t])
	}
	r.i, r.j = i, j
	return v
}

// Float64 returns the next value in [0, 1) with 52 bits of randomness.
func (r *Rand) Float64() float64 {
	n := float64(r.next(chunks))
	d := startDenom
	var x uint64
	for n < significance {
		n = (n + float64(x)) * width
		d *= width
		x = r.next(1)
	}
	for n >= overflow {
		n /= 2
		d /= 2
		x >>= 1
	}
	return (n + float64(x)) / d
}

// Intn returns floor(Float64()*n).
func (r *Rand) Intn(n int) int {
	return int(math.Floor(r.Float64() * float64(n)))
}

// Chance draws a single Bernoulli trial with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// Pick returns a uniformly drawn item. It panics on an empty slice.
func Pick[T any](r *Rand, items []T) T {
	return items[r.Intn(len(items))]
}
