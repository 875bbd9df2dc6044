package libcds

import "unsafe"

// bucket is one slot of the fixed bucket table: an ordered lock-free
// list plus enough padding to keep adjacent buckets from sharing a
// cache line under concurrent mutation, mirroring the teacher's
// mapOfTable/bucketOf padding pattern in mapof.go.
type bucket[T any, K comparable] struct {
	list orderedList[T, K]
	//lint:ignore U1000 prevents false sharing between adjacent buckets
	pad [bucketPad]byte
}

// bucketPad is sized against a pointer-width stand-in for orderedList's
// single atomic.Pointer field rather than the generic type itself,
// since a const array length can't depend on unbound type parameters.
const bucketPad = (cacheLineSize - unsafe.Sizeof(struct {
	head unsafe.Pointer
}{})%cacheLineSize) % cacheLineSize
