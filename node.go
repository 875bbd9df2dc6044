package libcds

import "sync/atomic"

// link is the marked-pointer primitive from spec §4.2, realized as an
// immutable (next, marked) pair swapped as a unit via atomic.Pointer
// rather than stealing a low bit out of *node.
//
// A tagged-pointer encoding (pointer | mark-bit) is the classic C/C++
// realization, but Go's garbage collector needs every live reference to
// a heap object to appear as an exact, untagged pointer somewhere it
// scans; hiding the mark in a node's own address would make the node
// invisible to the collector while still reachable through the tagged
// word. Wrapping (next, marked) in its own small struct and swapping the
// *link pointer keeps the mark bit and the successor pointer changing
// together atomically, at the cost of one small allocation per state
// transition (per spec §9's own stated fallback for environments without
// usable pointer low bits).
type link[T any, K comparable] struct {
	next   *node[T, K]
	marked bool
}

// node is one set element: the value opaque to the core, the key and
// hash used to keep the bucket chain ordered, and the atomic marked
// pointer to the successor.
type node[T any, K comparable] struct {
	hash  uint64
	key   K
	value T
	next  atomic.Pointer[link[T, K]]
}

func newNode[T any, K comparable](hash uint64, key K, value T, next *node[T, K]) *node[T, K] {
	n := &node[T, K]{hash: hash, key: key, value: value}
	n.next.Store(&link[T, K]{next: next})
	return n
}

// reset clears a node's fields before it's returned to the pool, so a
// large value or key doesn't outlive its logical lifetime just because
// the node struct itself is being reused.
func (n *node[T, K]) reset() {
	var zeroK K
	var zeroT T
	n.hash = 0
	n.key = zeroK
	n.value = zeroT
	n.next.Store(nil)
}

