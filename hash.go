package libcds

import (
	"fmt"
	"hash/maphash"
	"math/bits"
)

// Hasher computes a deterministic hash for a key. Equal keys must yield
// equal hashes; it is the caller's pure, injected collaborator (spec §6)
// and is never inferred from T.
type Hasher[K comparable] func(key K) uint64

// Less reports whether a orders strictly before b, under the same total
// order used to keep a bucket's node chain sorted.
type Less[K comparable] func(a, b K) bool

// KeyOf extracts the ordering/hashing key from a stored value. Many sets
// use T == K directly (see NewComparableSet), but the value can carry a key
// as one of several fields.
type KeyOf[T any, K comparable] func(v T) K

// spread mixes a hash's bits before it's used for bucket indexing, so
// hashes whose entropy is concentrated in the high bits (common for
// pointer-derived or sequential hashes) still distribute across buckets.
func spread(h uint64) uint64 {
	h ^= h >> 33
	h *= hashPrime
	h ^= h >> 29
	return h
}

// nextPow2 returns the smallest power of two that is >= n, with a floor
// of 1.
func nextPow2(n int) int {
	if n <= 0 {
		return 1
	}
	if bits.UintSize == 32 {
		return int(uint32(1) << bits.Len32(uint32(n-1)))
	}
	return int(uint64(1) << bits.Len64(uint64(n-1)))
}

// stringHasher and the maphash-seeded default below are grounded on
// tef-sink's xsync map, which hashes its list keys with hash/maphash
// rather than hand-rolling a mixing function for strings.
type stringHasher struct {
	seed maphash.Seed
}

func newStringHasher() *stringHasher {
	return &stringHasher{seed: maphash.MakeSeed()}
}

func (h *stringHasher) hash(s string) uint64 {
	return maphash.String(h.seed, s)
}

// DefaultHasher returns a Hasher for any comparable key built from a
// process-lifetime random seed. Non-string, non-integer key kinds fall
// back to hashing their %v representation, which is correct but slow;
// callers with performance-sensitive composite keys should supply their
// own Hasher through New's hasher parameter.
func DefaultHasher[K comparable]() Hasher[K] {
	sh := newStringHasher()
	var zero K
	switch any(zero).(type) {
	case string:
		return func(key K) uint64 {
			return spread(sh.hash(any(key).(string)))
		}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		seed := sh.seed
		return func(key K) uint64 {
			var buf [8]byte
			v := toUint64(key)
			buf[0] = byte(v)
			buf[1] = byte(v >> 8)
			buf[2] = byte(v >> 16)
			buf[3] = byte(v >> 24)
			buf[4] = byte(v >> 32)
			buf[5] = byte(v >> 40)
			buf[6] = byte(v >> 48)
			buf[7] = byte(v >> 56)
			return spread(maphash.Bytes(seed, buf[:]))
		}
	default:
		return func(key K) uint64 {
			return spread(sh.hash(toString(key)))
		}
	}
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case int:
		return uint64(x)
	case int8:
		return uint64(x)
	case int16:
		return uint64(x)
	case int32:
		return uint64(x)
	case int64:
		return uint64(x)
	case uint:
		return uint64(x)
	case uint8:
		return uint64(x)
	case uint16:
		return uint64(x)
	case uint32:
		return uint64(x)
	case uint64:
		return x
	case uintptr:
		return uint64(x)
	default:
		return 0
	}
}

func toString(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}
