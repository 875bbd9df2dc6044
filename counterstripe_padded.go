//go:build libcds_enablepadding

package libcds

import "unsafe"

// enablePadding pads counterStripe out to a full cache line to fully
// eliminate false sharing between stripes, at the cost of more memory
// per stripe. Off by default, matching the teacher's own default in
// mapof_opt_enablepadding_off.go.
const enablePadding = true

type counterStripe struct {
	//lint:ignore U1000 prevents false sharing
	pad [(cacheLineSize - unsafe.Sizeof(struct {
		c int64
	}{})%cacheLineSize) % cacheLineSize]byte
	c int64
}
