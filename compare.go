package tuplekey

import "bytes"

// Compare returns -1, 0 or 1 comparing two encoded buffers by unsigned
// bytewise order. This is the entire comparator: the codec's correctness
// claim is that this trivial operation realizes the total order over the
// values that produced a and b.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}
