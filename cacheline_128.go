//go:build libcds_cachelinesize_128

package libcds

const fixedCacheLineSize = 128
