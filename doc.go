// Package libcds implements a concurrent hash set built on Maged Michael's
// 2002 lock-free ordered-list design: a fixed array of hash buckets, each
// bucket an ordered singly-linked list mutated with compare-and-swap and
// marked-pointer deletion, backed by an epoch-based deferred reclamation
// scheme so a node observed by a reader is never reused while that reader
// might still dereference it.
//
// The bucket array is sized once at construction from an expected item
// count and a load factor; it never resizes. Iteration order is by bucket
// index then by ascending (hash, key) within a bucket, not by insertion
// order, and Size is an eventually-consistent approximation, not a
// linearizable snapshot.
//
// Reader safety depends on every read section being closed in a bounded
// number of steps. A goroutine that acquires a Guard and never releases it
// blocks reclamation for the whole set. Run tests that exercise Guard
// lifetimes under `go test -race` to catch section leaks.
package libcds
