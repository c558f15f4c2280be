package orderedsync

import (
	"strconv"
	"strings"
)

// KeySeparator joins composite key parts. It sorts below every printable
// character, so "a" followed by a separator still orders before "a/b".
const KeySeparator = "\x00"

// PadInt formats n as a zero-padded decimal of at least width digits, so that
// string order matches numeric order for non-negative values that fit.
// Negative values are not order-preserving and should be offset by the caller.
func PadInt(n int64, width int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// JoinKey concatenates parts with KeySeparator into one comparison key.
// Parts must not contain the separator themselves.
func JoinKey(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}
