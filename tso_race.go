//go:build race

package libcds

import "sync/atomic"

// Under the race detector, always use a genuine atomic load so races on
// the epoch slot are reported instead of masked by a TSO-only fast path.
const isTSO = false

//go:nosplit
func loadEpochFast(addr *uint64) uint64 {
	return atomic.LoadUint64(addr)
}
