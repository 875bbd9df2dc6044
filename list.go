package libcds

import "sync/atomic"

// orderedList is one bucket: a sentinel head holding an atomic marked
// pointer to the first real node (spec §3, "Bucket"). Nodes reachable
// from head are kept in strictly ascending (hash, key) order.
//
// The traversal, insert, and erase shapes are grounded on tef-sink's
// xsync map (entry.next atomic.Pointer[entry], insert_after/
// replace_next CAS helpers, physical deletion folded into the search
// walk); the operation names (search/insert/erase/extract/
// apply-on-find) and their exact contracts come from spec §4.3 and
// from _examples/original_source/cds/container/michael_set_rcu.h's
// erase_with/extract_with.
type orderedList[T any, K comparable] struct {
	head atomic.Pointer[link[T, K]]
}

// lessHashKey orders by (hash, key): hash first as a fast-path
// disambiguator, key comparison only on a hash tie (spec §4.3,
// "Ordering. Comparison is strictly over keys... Hash values may be
// used as a fast-path disambiguator").
func lessHashKey[K comparable](h1 uint64, k1 K, h2 uint64, k2 K, less Less[K]) bool {
	if h1 != h2 {
		return h1 < h2
	}
	return less(k1, k2)
}

// search is the shared primitive (spec §4.3): it returns prevSlot/
// prevLink such that prevSlot currently holds prevLink (an unmarked
// link), and curr is either the first node with (hash, key) >= target
// or nil. While walking, any node found to be marked deleted is
// physically spliced out by CASing its predecessor's slot; a failed
// splice CAS restarts the whole search from head.
func (l *orderedList[T, K]) search(hash uint64, key K, less Less[K]) (prevSlot *atomic.Pointer[link[T, K]], prevLink *link[T, K], curr *node[T, K]) {
restart:
	prevSlot = &l.head
	prevLink = prevSlot.Load()
	if prevLink == nil {
		curr = nil
	} else {
		curr = prevLink.next
	}

	for curr != nil {
		currLink := curr.next.Load()

		if currLink.marked {
			// prevLink is always a confirmed-unmarked link by the time it's
			// used here (either nil, meaning the sentinel head itself, or a
			// link this same loop already checked was unmarked), so the
			// splice never needs to carry a mark forward.
			splice := &link[T, K]{next: currLink.next}
			if !prevSlot.CompareAndSwap(prevLink, splice) {
				goto restart
			}
			prevLink = splice
			curr = splice.next
			continue
		}

		if !lessHashKey(curr.hash, curr.key, hash, key, less) {
			break
		}

		prevSlot = &curr.next
		prevLink = currLink
		curr = currLink.next
	}

	return prevSlot, prevLink, curr
}

func matches[T any, K comparable](n *node[T, K], hash uint64, key K) bool {
	return n != nil && n.hash == hash && n.key == key
}

// insert splices a new node in ascending order; returns false on a
// duplicate key without touching the list.
func (l *orderedList[T, K]) insert(hash uint64, key K, value T, less Less[K], pool *nodePool[T, K]) bool {
	for {
		prevSlot, prevLink, curr := l.search(hash, key, less)
		if matches[T, K](curr, hash, key) {
			return false
		}
		n := pool.get(hash, key, value, curr)
		if prevSlot.CompareAndSwap(prevLink, &link[T, K]{next: n}) {
			return true
		}
		pool.put(n)
	}
}

// ensure inserts a new node, or calls onExisting with the matching
// node's value in place when the key is already present. Per spec §9's
// resolution of its own open question, onExisting must be non-blocking
// and must not reenter the set.
func (l *orderedList[T, K]) ensure(hash uint64, key K, value T, less Less[K], pool *nodePool[T, K], onExisting func(existing *T)) bool {
	for {
		prevSlot, prevLink, curr := l.search(hash, key, less)
		if matches[T, K](curr, hash, key) {
			if onExisting != nil {
				onExisting(&curr.value)
			}
			return false
		}
		n := pool.get(hash, key, value, curr)
		if prevSlot.CompareAndSwap(prevLink, &link[T, K]{next: n}) {
			return true
		}
		pool.put(n)
	}
}

// erase logically deletes the node matching (hash, key): mark its own
// next-pointer, then best-effort physically unlink it. A failed physical
// unlink is left for the next search to complete (spec §4.3). Returns
// the removed node so the caller can retire it.
func (l *orderedList[T, K]) erase(hash uint64, key K, less Less[K]) (*node[T, K], bool) {
	for {
		prevSlot, prevLink, curr := l.search(hash, key, less)
		if !matches[T, K](curr, hash, key) {
			return nil, false
		}

		currLink := curr.next.Load()
		if currLink.marked {
			return nil, false
		}

		marked := &link[T, K]{next: currLink.next, marked: true}
		if !curr.next.CompareAndSwap(currLink, marked) {
			continue
		}

		prevSlot.CompareAndSwap(prevLink, &link[T, K]{next: currLink.next})
		return curr, true
	}
}

// extract behaves like erase but drives the physical unlink to
// completion before returning, so the returned node is guaranteed
// unreachable from head the instant extract returns (spec §4.3,
// "extract... must drive the physical unlink to completion").
func (l *orderedList[T, K]) extract(hash uint64, key K, less Less[K]) (*node[T, K], bool) {
	n, ok := l.erase(hash, key, less)
	if !ok {
		return nil, false
	}
	l.search(hash, key, less)
	return n, true
}

// find returns a copy of the value at (hash, key), if present.
func (l *orderedList[T, K]) find(hash uint64, key K, less Less[K]) (T, bool) {
	_, _, curr := l.search(hash, key, less)
	if !matches[T, K](curr, hash, key) {
		var zero T
		return zero, false
	}
	return curr.value, true
}

// get returns a pointer to the value at (hash, key), valid only for the
// caller's current read section (spec §4.4, "get").
func (l *orderedList[T, K]) get(hash uint64, key K, less Less[K]) (*T, bool) {
	_, _, curr := l.search(hash, key, less)
	if !matches[T, K](curr, hash, key) {
		return nil, false
	}
	return &curr.value, true
}

// applyOnFind calls fn on the value at (hash, key) if present, while the
// node is guaranteed alive under the caller's read section (spec §4.3,
// "apply-on-find").
func (l *orderedList[T, K]) applyOnFind(hash uint64, key K, less Less[K], fn func(*T)) bool {
	_, _, curr := l.search(hash, key, less)
	if !matches[T, K](curr, hash, key) {
		return false
	}
	fn(&curr.value)
	return true
}

// clearUnsafe unlinks every node in the list without CAS or
// reclamation bookkeeping; the caller is responsible for retiring the
// returned nodes. Not concurrent-safe against other mutators (spec
// §4.4, "clear").
func (l *orderedList[T, K]) clearUnsafe() []*node[T, K] {
	var removed []*node[T, K]
	headLink := l.head.Load()
	l.head.Store(nil)
	if headLink == nil {
		return removed
	}
	for n := headLink.next; n != nil; {
		removed = append(removed, n)
		n = n.next.Load().next
	}
	return removed
}

// rangeUnmarked walks the list in ascending (hash, key) order, invoking fn for
// each node whose own next-pointer is not marked deleted, stopping
// early if fn returns false.
func (l *orderedList[T, K]) rangeUnmarked(fn func(n *node[T, K]) bool) {
	link := l.head.Load()
	if link == nil {
		return
	}
	for n := link.next; n != nil; {
		nl := n.next.Load()
		if !nl.marked {
			if !fn(n) {
				return
			}
		}
		n = nl.next
	}
}

// firstUnmarked returns the first live node in the list, for an
// Iterator starting a new bucket.
func (l *orderedList[T, K]) firstUnmarked() *node[T, K] {
	hl := l.head.Load()
	if hl == nil {
		return nil
	}
	return skipMarked(hl.next)
}

// nextUnmarked returns the next live node after n, for an Iterator
// advancing within a bucket.
func nextUnmarked[T any, K comparable](n *node[T, K]) *node[T, K] {
	return skipMarked(n.next.Load().next)
}

func skipMarked[T any, K comparable](n *node[T, K]) *node[T, K] {
	for n != nil {
		nl := n.next.Load()
		if !nl.marked {
			return n
		}
		n = nl.next
	}
	return nil
}
