//go:build !libcds_cachelinesize_32 && !libcds_cachelinesize_64 && !libcds_cachelinesize_128 && !libcds_cachelinesize_256

package libcds

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// cacheLineSize is used to pad buckets and counter stripes to avoid false
// sharing. It's automatically calculated using the golang.org/x/sys package.
const cacheLineSize = unsafe.Sizeof(cpu.CacheLinePad{})
