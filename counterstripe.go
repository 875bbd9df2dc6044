//go:build !libcds_enablepadding

package libcds

const enablePadding = false

type counterStripe struct {
	c int64
}
