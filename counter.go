package libcds

import "sync/atomic"

// shardedCounter is the item counter from spec §3: "a monotone-delta
// integer... it may transiently disagree with the exact enumerable size
// under concurrency; it must be eventually consistent once mutations
// quiesce." Sharded across stripes to reduce contention under
// concurrent insert/erase, exactly as spec §9 allows ("Sharded counters
// reduce contention and meet the same contract").
//
// Grounded on the teacher's counterStripe/mapOfTable.addSize/sumSize in
// mapof.go, including its cache-line-padding build tag split
// (mapof_opt_enablepadding_on.go / _off.go), reproduced here as the two
// counterStripe variants in counterstripe_padded.go / counterstripe.go.
type shardedCounter struct {
	stripes []counterStripe
	mask    uint64
}

func newShardedCounter(shards int) *shardedCounter {
	n := nextPow2(shards)
	return &shardedCounter{
		stripes: make([]counterStripe, n),
		mask:    uint64(n - 1),
	}
}

// add applies delta to the stripe selected by hash, so concurrent
// mutations on different buckets don't contend on the same cache line.
func (c *shardedCounter) add(hash uint64, delta int64) {
	c.stripes[hash&c.mask].add(delta)
}

// sum computes the total count by summing all stripes. Not
// linearizable: a concurrent add on one stripe while another is being
// read can produce a transient total that neither preceded nor followed
// any single mutation (spec §3, item counter invariant; spec §5,
// "no linearizable snapshot of size()").
func (c *shardedCounter) sum() int64 {
	var total int64
	for i := range c.stripes {
		total += c.stripes[i].load()
	}
	return total
}

func (c *shardedCounter) isZero() bool {
	for i := range c.stripes {
		if c.stripes[i].load() != 0 {
			return false
		}
	}
	return true
}

func (c *shardedCounter) add1(hash uint64) { c.add(hash, 1) }

func (c *shardedCounter) sub1(hash uint64) { c.add(hash, -1) }

//go:nosplit
func (s *counterStripe) add(delta int64) {
	atomic.AddInt64(&s.c, delta)
}

//go:nosplit
func (s *counterStripe) load() int64 {
	return atomic.LoadInt64(&s.c)
}
