package libcds

// Guard represents an open read section on a Set, obtained from
// Acquire. Extract and Get require a Guard to prove the caller already
// holds a read section spanning the call (spec §4.4's "extract" and
// "get" both assume the surrounding read-section discipline from
// §4.1). A Guard must not be shared across goroutines.
type Guard[T any, K comparable] struct {
	set *Set[T, K]
	p   *participant
}

// Acquire opens a read section on s and returns a Guard for it. The
// Guard must be released with Release once the caller is done reading;
// forgetting to release it leaves a read section permanently open,
// which will make every future retire batch touching this Set block
// forever and will make Close panic (spec §7).
func (s *Set[T, K]) Acquire() *Guard[T, K] {
	return &Guard[T, K]{set: s, p: s.enter()}
}

// Release closes the read section opened by Acquire.
func (g *Guard[T, K]) Release() {
	g.set.leave(g.p)
	g.p = nil
}

// Enter reopens a read section on an already-Released Guard, allowing
// the same Guard value to be reused across a loop instead of calling
// Acquire repeatedly.
func (g *Guard[T, K]) Enter() {
	g.p = g.set.enter()
}

// Handle owns a node that has been physically unlinked from its Set by
// Extract but not yet reclaimed, matching the extraction lifecycle from
// spec §4.5 and original_source/cds/container/michael_set_rcu.h's
// exempt_ptr returned by extract_with. The value stays valid, and safe
// to read without any read section of the caller's own, until Release.
type Handle[T any, K comparable] struct {
	set *Set[T, K]
	n   *node[T, K]
}

// Value returns a pointer to the extracted value. Valid until Release.
// Calling Value after Release returns a pointer into a node that may
// already have been reused by another Insert; callers must not do this
// (spec §7 lists using a value after release as a fatal misuse, mirrored
// here as a documented precondition rather than a runtime check, since
// checking it would require tracking per-Handle liveness the core has no
// other reason to keep).
func (h *Handle[T, K]) Value() *T {
	return &h.n.value
}

// Release hands the extracted node back to the reclamation engine.
// Release does not defer its synchronize: it checks out a fresh, unused
// participant, retires the node on it and flushes immediately, which
// waits for every read section open at that moment, including any the
// calling goroutine still holds (for example the Guard used for
// Extract). Releasing while holding an open read section on this set
// therefore blocks forever; it does not panic. See DESIGN.md.
func (h *Handle[T, K]) Release() {
	if h.n == nil {
		return
	}
	p := h.set.epoch.checkout()
	p.retire(&retiredNode[T, K]{n: h.n, pool: h.set.pool})
	p.flush()
	h.set.epoch.checkin(p)
	h.n = nil
}
