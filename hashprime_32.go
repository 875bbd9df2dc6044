//go:build 386 || arm || mips || mipsle

package libcds

// hashPrime is the 32-bit Golden Ratio mixing constant, used to spread a
// key's hash across the bucket index range on 32-bit platforms.
// 0x9E3779B9 = floor(2^32 / phi), where phi is the golden ratio.
const hashPrime = 0x9E3779B9
