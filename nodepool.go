package libcds

import "sync"

// nodePool reuses reclaimed nodes across Insert calls instead of
// allocating fresh ones each time. This is the Go realization of the
// spec's "freed" state (§3, node lifecycle): there is no manual
// deallocation in a garbage-collected runtime, so a grace-period-expired
// node is returned to a pool rather than released to an allocator; the
// pool itself is eventually collected like any other Go value once it
// and everything it references become unreachable.
type nodePool[T any, K comparable] struct {
	pool sync.Pool
}

func newNodePool[T any, K comparable]() *nodePool[T, K] {
	return &nodePool[T, K]{}
}

func (p *nodePool[T, K]) get(hash uint64, key K, value T, next *node[T, K]) *node[T, K] {
	if n, ok := p.pool.Get().(*node[T, K]); ok {
		n.hash = hash
		n.key = key
		n.value = value
		n.next.Store(&link[T, K]{next: next})
		return n
	}
	return newNode[T, K](hash, key, value, next)
}

func (p *nodePool[T, K]) put(n *node[T, K]) {
	p.pool.Put(n)
}
