// Package value implements the closed universe of structured values that
// tuplekey encodes: a tagged sum of 17 variants, ordered as described in the
// package's design documentation, with one constructor per variant.
//
// Values are immutable once constructed: composite constructors copy the
// slices they are given, so a Value tree can never be mutated into
// containing itself. Cyclic composites are therefore not representable
// through this API; the only defense the codec needs against runaway
// nesting is a depth limit (see the root package's TooDeepError).
package value

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
)

// Value is any one of the 17 variants of the type lattice. The zero Value is
// not valid; always obtain one through a constructor in this package.
type Value struct {
	kind Kind
	v    any
}

// Kind returns the variant this value belongs to.
func (val Value) Kind() Kind { return val.kind }

// V returns the underlying payload, or nil for nullary variants. Prefer As
// for typed access.
func (val Value) V() any { return val.v }

func (val Value) String() string {
	switch val.kind {
	case Bytes:
		return string(As[[]byte](val))
	case Text, Code:
		return As[string](val)
	case NegNumber, PosNumber:
		return formatFloat(As[float64](val))
	case NegDate, PosDate:
		return formatFloat(As[float64](val))
	}
	return val.kind.String()
}

func formatFloat(f float64) string {
	return strconvFormat(f)
}

// As extracts the payload of v as T, returning the zero value of T if v does
// not carry a T. Mirrors the accessor pattern used across the rest of the
// ecosystem this codec was built for: a single generic getter instead of one
// per concrete type.
func As[T any](v Value) T {
	x, _ := v.v.(T)
	return x
}

// MapEntry is one (key, value) pair of a Map. Keys may be any Value variant.
type MapEntry struct {
	Key   Value
	Value Value
}

// Field is a named value, used by NewMapFromFields to build the common
// string-keyed record case.
type Field struct {
	Name  string
	Value Value
}

func nullary(k Kind) Value { return Value{kind: k} }

// NewBottom returns the absent/undefined value.
func NewBottom() Value { return nullary(Bottom) }

// NewNull returns the explicit null value.
func NewNull() Value { return nullary(Null) }

// NewBool returns True or False.
func NewBool(b bool) Value {
	if b {
		return nullary(True)
	}
	return nullary(False)
}

// NewNegInfinity returns the -Infinity sentinel.
func NewNegInfinity() Value { return nullary(NegInfinity) }

// NewPosInfinity returns the +Infinity sentinel.
func NewPosInfinity() Value { return nullary(PosInfinity) }

// NewNumber returns a NegNumber or PosNumber value carrying f. NaN is
// rejected, matching the spec's ban on encoding "not a number".
func NewNumber(f float64) (Value, error) {
	if math.IsNaN(f) {
		return Value{}, errors.WithStack(&BadValueError{Reason: "NaN cannot be encoded as a number"})
	}
	if math.Signbit(f) {
		return Value{kind: NegNumber, v: f}, nil
	}
	return Value{kind: PosNumber, v: f}, nil
}

// NewDate returns a NegDate or PosDate value carrying the millisecond offset
// of t from the Unix epoch. t.UnixMilli() does not depend on t's location
// and always converts to a finite float64, so the invalid-timestamp error
// that NewDateFromMillis can report is never returned here.
func NewDate(t time.Time) (Value, error) {
	return NewDateFromMillis(float64(t.UnixMilli()))
}

// NewDateFromMillis returns a NegDate or PosDate value carrying ms verbatim,
// the millisecond offset from the Unix epoch. Decode uses this to
// reconstruct a date without a lossy round trip through time.Time.
func NewDateFromMillis(ms float64) (Value, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return Value{}, errors.WithStack(&BadValueError{Reason: "invalid timestamp"})
	}
	if math.Signbit(ms) {
		return Value{kind: NegDate, v: ms}, nil
	}
	return Value{kind: PosDate, v: ms}, nil
}

// DateTime reconstructs the time.Time a NegDate/PosDate value was built
// from. It does not check v's kind: a number's payload is read as
// milliseconds and any other kind yields the Unix epoch, so callers that
// don't already know the kind should check v.Kind() first.
func DateTime(v Value) time.Time {
	ms := As[float64](v)
	return time.UnixMilli(int64(ms)).UTC()
}

// NewBytes returns an opaque, bitwise-ordered byte string.
func NewBytes(b []byte) Value {
	return Value{kind: Bytes, v: append([]byte(nil), b...)}
}

// NewText returns a Unicode string, ordered by the lexicographic order of
// its UTF-8 byte form. Invalid UTF-8 is rejected.
func NewText(s string) (Value, error) {
	if !isValidUTF8(s) {
		return Value{}, errors.WithStack(&BadValueError{Reason: "text is not valid UTF-8"})
	}
	return Value{kind: Text, v: s}, nil
}

// NewSet returns an unordered multiset. Elements are canonically re-sorted
// by the encoder before encoding; this constructor keeps caller order until
// then, since equality only needs to hold post-encoding.
func NewSet(elems []Value) Value {
	return Value{kind: Set, v: append([]Value(nil), elems...)}
}

// NewList returns a position-significant ordered sequence.
func NewList(elems []Value) Value {
	return Value{kind: List, v: append([]Value(nil), elems...)}
}

// NewMap returns an ordered sequence of (key, value) pairs, preserving the
// caller's order. Use NewMapFromFields for the common string-keyed,
// key-sorted case.
func NewMap(entries []MapEntry) Value {
	return Value{kind: Map, v: append([]MapEntry(nil), entries...)}
}

// NewMapFromFields builds a Map from a string-keyed record. Per the
// baseline contract, keys are written in ascending text order so that two
// producers of the same record encode identical bytes regardless of the
// order fields were supplied in.
func NewMapFromFields(fields []Field) (Value, error) {
	sorted := append([]Field(nil), fields...)
	sortFieldsByName(sorted)

	entries := make([]MapEntry, len(sorted))
	for i, f := range sorted {
		k, err := NewText(f.Name)
		if err != nil {
			return Value{}, err
		}
		entries[i] = MapEntry{Key: k, Value: f.Value}
	}
	return NewMap(entries), nil
}

// NewCode returns an executable value, stored and ordered by its canonical
// textual representation. Revival into a runnable form is out of scope: the
// codec never evaluates this text.
func NewCode(source string) Value {
	return Value{kind: Code, v: source}
}

// NewHigh returns the exclusive maximum sentinel used to build half-open
// ranges over composite prefixes. It cannot itself be encoded: Encode
// rejects it wherever it appears in a value tree supplied by a caller.
func NewHigh() Value { return nullary(HighSentinel) }
