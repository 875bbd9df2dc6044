//go:build libcds_cachelinesize_32

package libcds

const fixedCacheLineSize = 32
