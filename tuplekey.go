// Package tuplekey implements an order-preserving binary encoding for the
// value lattice defined in package value: encoding two values and comparing
// the resulting buffers bytewise yields the same answer as comparing the
// values themselves. This makes the codec useful as a key format for a
// key/value store whose only native ordering is bytewise comparison.
package tuplekey

import "github.com/chaisql/tuplekey/value"

// tagOf assigns every Kind its fixed tag byte. The table is the single
// source of truth consulted by both Encode and Decode; tags are strictly
// increasing in Kind's declaration order, so a differing tag alone decides
// comparison between values of different kinds.
var tagOf = [...]byte{
	value.Bottom:       0x10,
	value.Null:         0x11,
	value.False:        0x20,
	value.True:         0x21,
	value.NegInfinity:  0x40,
	value.NegNumber:    0x41,
	value.PosNumber:    0x42,
	value.PosInfinity:  0x43,
	value.NegDate:      0x51,
	value.PosDate:      0x52,
	value.Bytes:        0x60,
	value.Text:         0x70,
	value.Set:          0x90,
	value.List:         0xA0,
	value.Map:          0xB0,
	value.Code:         0xC0,
	value.HighSentinel: 0xFF,
}

func tagFor(k value.Kind) (byte, bool) {
	if int(k) >= len(tagOf) {
		return 0, false
	}
	t := tagOf[k]
	if t == 0 {
		return 0, false
	}
	return t, true
}

var kindOfTag map[byte]value.Kind

func init() {
	kindOfTag = make(map[byte]value.Kind, len(tagOf))
	for k, t := range tagOf {
		if t == 0 {
			continue
		}
		kindOfTag[t] = value.Kind(k)
	}
}

// HighByte is the exclusive upper-bound sentinel used to build half-open
// range scans over composite prefixes: appending it to an encoded prefix p
// produces the smallest key strictly greater than every key that starts
// with p. It is a raw byte, not a Value: the HIGH variant cannot be encoded
// through Encode, since it has no meaning as a piece of user data.
const HighByte byte = 0xFF

// terminator ends composites and, embedded inside them, variable-length
// scalars.
const terminator byte = 0x00

// DefaultMaxDepth bounds composite nesting depth for Encode and Decode when
// no explicit Options are supplied.
const DefaultMaxDepth = 1000
