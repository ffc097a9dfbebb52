package xdr

// PaddingLength returns the number of zero bytes needed after n bytes of
// data to reach the next 4-byte boundary.
//
// Example:
//
//	n=3 → 1, n=4 → 0, n=5 → 3
func PaddingLength(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

// Align returns n rounded up to a multiple of 4.
func Align(n int) int {
	return n + PaddingLength(n)
}
