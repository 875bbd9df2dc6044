//go:build libcds_cachelinesize_256

package libcds

const fixedCacheLineSize = 256
