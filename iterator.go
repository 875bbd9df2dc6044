package libcds

// Iterator walks every live element of a Set in bucket-index order,
// then ascending (hash, key) order within a bucket, skipping marked-deleted
// nodes (spec §4.4, "iterator"). An Iterator is single-goroutine-only:
// it is not safe to advance the same Iterator from more than one
// goroutine, and it must not outlive the Guard it was built from.
//
// A concurrent insert or erase during iteration may or may not be
// observed, per spec §4.4's weak-consistency iterator contract; an
// Iterator never observes a value that was never live and never
// dereferences a node after it has been reclaimed, since it holds an
// open read section for its entire walk.
type Iterator[T any, K comparable] struct {
	set    *Set[T, K]
	guard  *Guard[T, K]
	bucket int
	curr   *node[T, K]
}

// NewIterator opens a read section and returns an Iterator positioned
// before the first element. Call Next to advance to the first element.
func (s *Set[T, K]) NewIterator() *Iterator[T, K] {
	return &Iterator[T, K]{set: s, guard: s.Acquire(), bucket: -1}
}

// Next advances the iterator and reports whether a live element is now
// available. Iteration order is bucket index ascending, then (hash, key)
// ascending within a bucket.
func (it *Iterator[T, K]) Next() bool {
	if it.curr != nil {
		if n := nextUnmarked[T, K](it.curr); n != nil {
			it.curr = n
			return true
		}
	}

	for it.bucket++; it.bucket < len(it.set.buckets); it.bucket++ {
		if n := it.set.buckets[it.bucket].list.firstUnmarked(); n != nil {
			it.curr = n
			return true
		}
	}

	it.curr = nil
	return false
}

// Key returns the current element's key. Valid only after a Next call
// that returned true.
func (it *Iterator[T, K]) Key() K {
	return it.curr.key
}

// Value returns a copy of the current element's value. Valid only
// after a Next call that returned true.
func (it *Iterator[T, K]) Value() T {
	return it.curr.value
}

// Close releases the read section backing this iterator. Must be
// called exactly once when the caller is done, whether or not Next was
// driven to exhaustion.
func (it *Iterator[T, K]) Close() {
	it.guard.Release()
}
