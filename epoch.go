package libcds

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// idleEpoch marks a participant slot as having no open read section.
const idleEpoch = ^uint64(0)

// epochManager implements the reclamation engine's contract from spec
// §4.1: enter/leave open and close read sections, retire hands off a
// logically-removed node, and synchronize blocks until every read
// section open at the moment of the call has ended or advanced past it.
//
// There is no direct analog in the teacher (mapof.go never needs
// reclamation because it never unlinks memory ahead of its own
// resize-driven bucket rewrite); mapof_lockfree_experimental.go's
// EpochManager stub is the pack's only precedent, and it is an admitted
// TODO with no algorithm behind it. The algorithm here follows spec
// §4.1 directly: a global epoch counter, a per-participant slot set to
// the observed epoch on enter and to idleEpoch on outermost leave, and
// a synchronize that advances the global epoch and spins until every
// slot is idle or past the snapshotted epoch.
type epochManager struct {
	global       uint64
	mu           sync.Mutex
	participants []*participant
	pool         sync.Pool
	batchFactor  int
}

func newEpochManager() *epochManager {
	m := &epochManager{}
	m.pool.New = func() any {
		p := &participant{mgr: m}
		atomic.StoreUint64(&p.epoch, idleEpoch)
		return p
	}
	return m
}

// participant is one goroutine's epoch slot plus its retire buffer.
// Only the goroutine holding the participant (via a Guard) ever mutates
// it; the epoch field is published for synchronize to observe from other
// goroutines.
type participant struct {
	mgr      *epochManager
	epoch    uint64
	depth    int
	registry sync.Once
	retireBuf
}

// register adds the participant to the manager's scan list exactly once,
// the first time it's checked out of the pool with no prior registration.
func (p *participant) register() {
	p.registry.Do(func() {
		p.mgr.mu.Lock()
		p.mgr.participants = append(p.mgr.participants, p)
		p.mgr.mu.Unlock()
	})
}

// checkout obtains a participant slot, creating and registering a new
// one if the pool is empty. Slots are never removed from the manager's
// scan list, matching the teacher's general willingness to trade a
// bounded amount of long-lived bookkeeping (see mapOfTable's counter
// stripes, sized once and kept for the table's lifetime) for a simpler
// concurrent design.
func (m *epochManager) checkout() *participant {
	p := m.pool.Get().(*participant)
	p.register()
	return p
}

// checkin returns a participant to the pool for reuse by another
// goroutine. The caller must have already left every read section it
// opened on p.
func (m *epochManager) checkin(p *participant) {
	m.pool.Put(p)
}

// enter opens a read section, or reenters an already-open one. Cheap: a
// single publish of the current global epoch plus an acquire fence from
// the atomic store itself (spec §4.1, §5 "Memory ordering").
func (p *participant) enter() {
	if p.depth == 0 {
		atomic.StoreUint64(&p.epoch, loadEpochFast(&p.mgr.global))
	}
	p.depth++
}

// leave closes the innermost read section. On the outermost close, the
// slot is published idle so a concurrent synchronize can pass it.
func (p *participant) leave() {
	p.depth--
	if p.depth < 0 {
		panic(ContractViolation{Op: "leave", Reason: "leave called without a matching enter"})
	}
	if p.depth == 0 {
		atomic.StoreUint64(&p.epoch, idleEpoch)
	}
}

// inSection reports whether p currently has an open read section.
func (p *participant) inSection() bool {
	return p.depth > 0
}

// synchronize blocks until every participant that had an open read
// section at the moment of the call has either left it or advanced past
// the epoch snapshotted here. Fatal if called from within a read section
// on the same participant: it would deadlock waiting on itself.
func (m *epochManager) synchronize(caller *participant) {
	if caller != nil && caller.inSection() {
		panic(ContractViolation{Op: "synchronize", Reason: "called from within a read section, would deadlock"})
	}

	e := atomic.AddUint64(&m.global, 1) - 1

	m.mu.Lock()
	participants := make([]*participant, len(m.participants))
	copy(participants, m.participants)
	m.mu.Unlock()

	for _, p := range participants {
		if p == caller {
			continue
		}
		for {
			pe := atomic.LoadUint64(&p.epoch)
			if pe == idleEpoch || pe > e {
				break
			}
			runtime.Gosched()
		}
	}
}
