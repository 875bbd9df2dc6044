//go:build !race

package libcds

import (
	"runtime"
	"sync/atomic"
)

// isTSO reports whether the current architecture has a total-store-order
// memory model, on which a plain load of a native-width value already
// observes the latest atomic store without an explicit atomic instruction.
// Used only to skip redundant atomic loads on the epoch hot path; every
// cross-goroutine publish still goes through sync/atomic.
const isTSO = runtime.GOARCH == "amd64" ||
	runtime.GOARCH == "386" ||
	runtime.GOARCH == "s390x"

// loadEpochFast reads a published epoch value on the enter() hot path.
//
//go:nosplit
func loadEpochFast(addr *uint64) uint64 {
	//goland:noinspection ALL
	if isTSO {
		return *addr
	}
	return atomic.LoadUint64(addr)
}
