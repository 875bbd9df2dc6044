package libcds

import (
	"cmp"
	"math"
	"runtime"
)

// Set is a concurrent hash set: a fixed array of M = 2^k ordered
// lock-free lists, dispatched by hash, backed by epoch-based
// reclamation (spec §1–§4). The zero Set is not usable; construct one
// with New or NewOrdered.
type Set[T any, K comparable] struct {
	buckets []bucket[T, K]
	mask    uint64
	keyOf   KeyOf[T, K]
	hasher  Hasher[K]
	less    Less[K]
	counter *shardedCounter
	epoch   *epochManager
	pool    *nodePool[T, K]
}

// New constructs a Set over values of type T keyed by K, with an
// externally injected key extractor, hash function, and ordering
// predicate (spec §6, "Hash function", "Key comparison").
func New[T any, K comparable](keyOf KeyOf[T, K], hasher Hasher[K], less Less[K], opts ...Option) *Set[T, K] {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	tableLen := calcTableLen(cfg.expectedItems, cfg.loadFactor)
	shards := cfg.counterShards
	if shards == 0 {
		shards = runtime.GOMAXPROCS(0)
	}

	s := &Set[T, K]{
		buckets: make([]bucket[T, K], tableLen),
		mask:    uint64(tableLen - 1),
		keyOf:   keyOf,
		hasher:  hasher,
		less:    less,
		counter: newShardedCounter(shards),
		epoch:   newEpochManager(),
		pool:    newNodePool[T, K](),
	}
	s.epoch.batchFactor = cfg.retireBatch
	return s
}

// NewOrdered constructs a Set for a key type with a natural order,
// using a maphash-based default Hasher and K's built-in "<" for
// ordering.
func NewOrdered[T any, K cmp.Ordered](keyOf KeyOf[T, K], opts ...Option) *Set[T, K] {
	return New[T, K](keyOf, DefaultHasher[K](), func(a, b K) bool { return a < b }, opts...)
}

// NewComparableSet constructs a Set whose values are their own keys,
// the common case exercised by spec §8's scenarios (inserting bare
// integers).
func NewComparableSet[K cmp.Ordered](opts ...Option) *Set[K, K] {
	return NewOrdered[K, K](func(v K) K { return v }, opts...)
}

// calcTableLen computes the bucket count for the table (spec §6: "The
// core picks the smallest M = 2^k such that M * load_factor >=
// expected_max"). Grounded on the teacher's calcTableLen in mapof.go,
// with the entries-per-bucket term removed since a bucket here holds an
// unbounded list rather than a fixed-width slot array.
func calcTableLen(expectedItems int, loadFactor float64) int {
	if expectedItems <= 0 {
		expectedItems = defaultMinTableLen
	}
	n := int(math.Ceil(float64(expectedItems) / loadFactor))
	return nextPow2(n)
}

func (s *Set[T, K]) bucketFor(hash uint64) *bucket[T, K] {
	return &s.buckets[hash&s.mask]
}

func (s *Set[T, K]) enter() *participant {
	p := s.epoch.checkout()
	p.enter()
	return p
}

func (s *Set[T, K]) leave(p *participant) {
	p.leave()
	s.epoch.checkin(p)
}

// Insert adds v if key(v) is not already present. Returns false on a
// duplicate key (spec §4.4, "insert").
func (s *Set[T, K]) Insert(v T) bool {
	key := s.keyOf(v)
	hash := s.hasher(key)
	p := s.enter()
	defer s.leave(p)

	if s.bucketFor(hash).list.insert(hash, key, v, s.less, s.pool) {
		s.counter.add1(hash)
		return true
	}
	return false
}

// Ensure inserts v if key(v) is absent, or calls f with a pointer to
// the existing value in place if present (spec §4.4, "ensure"). f must
// be non-blocking and must not call back into the set (spec §9's
// resolution of its own open question). Atomicity of the check-then-act
// is per bucket, not global.
func (s *Set[T, K]) Ensure(v T, f func(existing *T)) (inserted bool) {
	key := s.keyOf(v)
	hash := s.hasher(key)
	p := s.enter()
	defer s.leave(p)

	inserted = s.bucketFor(hash).list.ensure(hash, key, v, s.less, s.pool, f)
	if inserted {
		s.counter.add1(hash)
	}
	return inserted
}

// Erase removes the value at key, if present.
func (s *Set[T, K]) Erase(key K) bool {
	return s.eraseWith(key, s.less)
}

// EraseWith removes the value matching key under an externally supplied
// ordering predicate, which must imply the same total order as the
// set's own (spec §4.4, "erase_with").
func (s *Set[T, K]) EraseWith(key K, less Less[K]) bool {
	return s.eraseWith(key, less)
}

func (s *Set[T, K]) eraseWith(key K, less Less[K]) bool {
	hash := s.hasher(key)
	p := s.enter()

	// extract rather than erase: the node must be unreachable from head
	// before it is retired, and the retire runs after the read section is
	// left, since a retire past the batch threshold calls synchronize.
	n, ok := s.bucketFor(hash).list.extract(hash, key, less)
	p.leave()
	if ok {
		s.counter.sub1(hash)
		p.retire(&retiredNode[T, K]{n: n, pool: s.pool})
	}
	s.epoch.checkin(p)
	return ok
}

// Extract unlinks the value at key and hands ownership to the returned
// Handle without reclaiming it yet (spec §4.4, "extract"). Must be
// called while g is holding an open read section on this set.
func (s *Set[T, K]) Extract(g *Guard[T, K], key K) (*Handle[T, K], bool) {
	return s.extractWith(g, key, s.less)
}

// ExtractWith is Extract with an externally supplied ordering
// predicate (spec §4.4 combined with the extract_with variant in
// original_source/cds/container/michael_set_rcu.h).
func (s *Set[T, K]) ExtractWith(g *Guard[T, K], key K, less Less[K]) (*Handle[T, K], bool) {
	return s.extractWith(g, key, less)
}

func (s *Set[T, K]) extractWith(g *Guard[T, K], key K, less Less[K]) (*Handle[T, K], bool) {
	s.requireGuard(g, "Extract")

	hash := s.hasher(key)
	n, ok := s.bucketFor(hash).list.extract(hash, key, less)
	if !ok {
		return nil, false
	}
	s.counter.sub1(hash)
	return &Handle[T, K]{set: s, n: n}, true
}

func (s *Set[T, K]) requireGuard(g *Guard[T, K], op string) {
	if g == nil || g.set != s || g.p == nil || !g.p.inSection() {
		panic(ContractViolation{Op: op, Reason: "must be called while holding an open read section acquired from this set"})
	}
}

// Find returns a copy of the value at key, managing its own transient
// read section (spec §4.4, "find(k)").
func (s *Set[T, K]) Find(key K) (T, bool) {
	hash := s.hasher(key)
	p := s.enter()
	defer s.leave(p)
	return s.bucketFor(hash).list.find(hash, key, s.less)
}

// Contains reports whether key is present.
func (s *Set[T, K]) Contains(key K) bool {
	_, ok := s.Find(key)
	return ok
}

// FindFunc calls fn on the value at key if present, while the node is
// guaranteed alive (spec §4.4, "find(k, f)"; spec §4.3, "apply-on-find").
// fn may modify non-key fields of the value only.
func (s *Set[T, K]) FindFunc(key K, fn func(v *T)) bool {
	hash := s.hasher(key)
	p := s.enter()
	defer s.leave(p)
	return s.bucketFor(hash).list.applyOnFind(hash, key, s.less, fn)
}

// Get returns a pointer to the value at key, valid only for the
// lifetime of g's read section (spec §4.4, "get").
func (s *Set[T, K]) Get(g *Guard[T, K], key K) (*T, bool) {
	s.requireGuard(g, "Get")
	hash := s.hasher(key)
	return s.bucketFor(hash).list.get(hash, key, s.less)
}

// Clear removes every element and retires every node. Not
// concurrent-safe against other mutators; intended for teardown (spec
// §4.4, "clear").
func (s *Set[T, K]) Clear() {
	var removed []*node[T, K]
	for i := range s.buckets {
		removed = append(removed, s.buckets[i].list.clearUnsafe()...)
	}
	if len(removed) == 0 {
		return
	}

	p := s.epoch.checkout()
	for _, n := range removed {
		s.counter.sub1(n.hash)
		p.retire(&retiredNode[T, K]{n: n, pool: s.pool})
	}
	p.flush()
	s.epoch.checkin(p)
}

// Size returns the approximate item count (spec §3, "Item counter"; not
// a linearizable snapshot, spec §5).
func (s *Set[T, K]) Size() int {
	return int(s.counter.sum())
}

// Empty reports whether the approximate item count is zero.
func (s *Set[T, K]) Empty() bool {
	return s.counter.isZero()
}

// BucketCount returns M, the fixed bucket table size chosen at
// construction (spec §4.4, "bucket_count").
func (s *Set[T, K]) BucketCount() int {
	return len(s.buckets)
}

// Close asserts that no goroutine has an open read section on this set,
// panicking with a ContractViolation if one does (spec §7). It does not
// release any epoch bookkeeping, and it does not check for retired nodes
// still waiting in a participant's retire buffer: those are not detected
// and do not make Close panic.
func (s *Set[T, K]) Close() {
	s.epoch.mu.Lock()
	defer s.epoch.mu.Unlock()
	for _, p := range s.epoch.participants {
		if p.inSection() {
			panic(ContractViolation{Op: "Close", Reason: "another goroutine has an open read section"})
		}
	}
}
