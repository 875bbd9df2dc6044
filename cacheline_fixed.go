//go:build libcds_cachelinesize_32 || libcds_cachelinesize_64 || libcds_cachelinesize_128 || libcds_cachelinesize_256

package libcds

// cacheLineSize is pinned to a fixed value instead of the
// golang.org/x/sys/cpu-detected size, for platforms where the detected
// size is wrong or for measuring padding sensitivity.
const cacheLineSize = fixedCacheLineSize
