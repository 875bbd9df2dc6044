package libcds

// retirable is a node whose logical removal is complete and which is
// safe to reclaim once every read section open at retirement time has
// ended. Kept as a plain (non-generic) interface so a single
// epochManager and participant pool can serve any Set[T,K] instance
// without making the reclamation engine itself generic.
type retirable interface {
	reclaim()
}

// retireBuf batches retired nodes on their retiring goroutine before
// paying for a synchronize, per spec §4.1 "Batching": "Nodes may be
// retired into a thread-local buffer; when the buffer crosses a
// threshold... the thread triggers synchronize() and frees the batch."
type retireBuf struct {
	buf []retirable
}

// defaultRetireBatchFactor is the multiple of the current reader
// population used as the default retire-buffer flush threshold.
const defaultRetireBatchFactor = 4

// retire enqueues r for reclamation, flushing the batch once it crosses
// the manager's threshold.
func (p *participant) retire(r retirable) {
	p.buf = append(p.buf, r)
	if len(p.buf) >= p.mgr.retireThreshold() {
		p.flush()
	}
}

// flush drains the retire buffer, blocking on a single synchronize for
// the whole batch rather than one per node.
func (p *participant) flush() {
	if len(p.buf) == 0 {
		return
	}
	p.mgr.synchronize(p)
	for _, r := range p.buf {
		r.reclaim()
	}
	clear(p.buf)
	p.buf = p.buf[:0]
}

func (m *epochManager) retireThreshold() int {
	m.mu.Lock()
	n := len(m.participants)
	m.mu.Unlock()
	if n < 1 {
		n = 1
	}
	factor := m.batchFactor
	if factor <= 0 {
		factor = defaultRetireBatchFactor
	}
	return n * factor
}

// retiredNode adapts a *node[T,K] and the pool it came from into a
// retirable, so reclamation returns the node to the pool instead of
// calling a manual free that Go's garbage-collected runtime has no use
// for (see DESIGN.md, "Manual reclamation vs GC").
type retiredNode[T any, K comparable] struct {
	n    *node[T, K]
	pool *nodePool[T, K]
}

func (r *retiredNode[T, K]) reclaim() {
	r.n.reset()
	r.pool.put(r.n)
}
