//go:build libcds_cachelinesize_64

package libcds

const fixedCacheLineSize = 64
