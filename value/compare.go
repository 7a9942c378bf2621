package value

import (
	"bytes"

	"golang.org/x/exp/slices"
)

// Compare returns -1, 0 or 1 according to the total order defined over the
// lattice: kinds compare first, and only values of the same kind ever fall
// back to comparing payloads.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}

	switch a.kind {
	case Bytes:
		return bytes.Compare(As[[]byte](a), As[[]byte](b))
	case Text, Code:
		return compareString(As[string](a), As[string](b))
	case NegNumber, PosNumber, NegDate, PosDate:
		return compareFloat(As[float64](a), As[float64](b))
	case List:
		return compareValueSlice(As[[]Value](a), As[[]Value](b))
	case Set:
		return compareValueSlice(SortedElements(As[[]Value](a)), SortedElements(As[[]Value](b)))
	case Map:
		return compareEntrySlice(As[[]MapEntry](a), As[[]MapEntry](b))
	}

	// nullary kinds carry no payload: equal kind means equal value.
	return 0
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareValueSlice compares two sequences element by element, treating a
// shorter sequence that is a prefix of the other as smaller. This is used
// both for List (in caller order) and for Set (after canonicalization).
func compareValueSlice(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func compareEntrySlice(a, b []MapEntry) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i].Key, b[i].Key); c != 0 {
			return c
		}
		if c := Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// SortedElements returns a sorted copy of elems in the lattice's total
// order. Encode calls this on every Set's elements before writing them, so
// two sets built from the same members in different orders produce
// identical bytes.
func SortedElements(elems []Value) []Value {
	out := append([]Value(nil), elems...)
	slices.SortFunc(out, func(a, b Value) int {
		return Compare(a, b)
	})
	return out
}
