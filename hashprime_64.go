//go:build amd64 || arm64 || ppc64 || ppc64le || mips64 || mips64le || riscv64 || s390x || wasm

package libcds

// hashPrime is the 64-bit mixing constant used to spread a key's hash
// across the bucket index range.
// 0x9E3779B185EBCA87 is xxHash64's PRIME64_1, a prime whose leading 28
// bits match floor(2^64 / phi) = 0x9E3779B97F4A7C15.
const hashPrime = 0x9E3779B185EBCA87
