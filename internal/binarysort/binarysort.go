// Package binarysort provides low-level helpers for encoding scalars into
// naturally sorted binary representations. That way, if xA < xB, where xA
// and xB are two unencoded values of the same Go type, then eA < eB, where
// eA and eB are the respective encoded byte slices.
//
// The package knows nothing about the value lattice built on top of it; it
// only guarantees bytewise order for the primitives it exposes.
package binarysort

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// AppendBool takes a bool and returns its binary representation.
func AppendBool(buf []byte, x bool) []byte {
	if x {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// DecodeBool takes a byte slice and decodes it into a boolean.
func DecodeBool(buf []byte) (bool, error) {
	if len(buf) == 0 {
		return false, errors.New("cannot decode buffer to bool")
	}
	return buf[0] == 1, nil
}

// AppendUint64 takes a uint64 and returns its big-endian binary representation.
func AppendUint64(buf []byte, x uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], x)
	return append(buf, b[:]...)
}

// DecodeUint64 takes a byte slice and decodes it into a uint64.
func DecodeUint64(buf []byte) (uint64, error) {
	if len(buf) < 8 {
		return 0, errors.New("cannot decode buffer to uint64")
	}

	return binary.BigEndian.Uint64(buf), nil
}

// AppendFloat64Raw appends the raw big-endian IEEE-754 bits of x, unmodified.
// Since a non-negative float64 sorts correctly as a big-endian unsigned
// integer, this is enough to order every non-negative payload correctly
// against every other one.
func AppendFloat64Raw(buf []byte, x float64) []byte {
	return AppendUint64(buf, math.Float64bits(x))
}

// DecodeFloat64Raw is the dual of AppendFloat64Raw.
func DecodeFloat64Raw(buf []byte) (float64, error) {
	x, err := DecodeUint64(buf)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(x), nil
}

// AppendFloat64Complement appends the one's complement of the big-endian
// IEEE-754 bits of the magnitude of x (x is expected to be negative, but
// only its absolute value is encoded: the sign is carried by the tag, not
// by these bits). Complementing every bit reverses the natural unsigned
// ordering, so the largest magnitude sorts first, which is what a negative
// number line needs: -100 must encode smaller than -1.
func AppendFloat64Complement(buf []byte, x float64) []byte {
	bits := math.Float64bits(math.Abs(x))
	return AppendUint64(buf, ^bits)
}

// DecodeFloat64Complement is the dual of AppendFloat64Complement. It returns
// the negative value whose magnitude was encoded.
func DecodeFloat64Complement(buf []byte) (float64, error) {
	x, err := DecodeUint64(buf)
	if err != nil {
		return 0, err
	}
	mag := math.Float64frombits(^x)
	return -mag, nil
}

// escape marker and codes used by AppendEmbedded/DecodeEmbedded below.
const (
	terminator   byte = 0x00
	escapeMarker byte = 0xFF
	escapedFE    byte = 0x01
	escapedFF    byte = 0x02
)

// AppendEmbedded encodes data for use inside a composite (list, set or map):
// every payload byte is shifted up by one so that a literal 0x00 can never
// occur in the output, then a 0x00 terminator is appended. The two byte
// values that would otherwise wrap into the reserved range after the shift
// - 0xFF, which would wrap to the terminator 0x00, and 0xFE, which would
// wrap into the escape marker 0xFF - are written as two-byte escapes
// instead of being shifted: 0xFE as FF 01 and 0xFF as FF 02, so the two
// escapes keep their relative order and sort above every shifted byte.
func AppendEmbedded(dst, data []byte) []byte {
	for _, b := range data {
		switch b {
		case 0xFF:
			dst = append(dst, escapeMarker, escapedFF)
		case 0xFE:
			dst = append(dst, escapeMarker, escapedFE)
		default:
			dst = append(dst, b+1)
		}
	}
	return append(dst, terminator)
}

// DecodeEmbedded reads a value encoded by AppendEmbedded from the start of
// src and returns the original bytes along with the number of bytes of src
// consumed, terminator included.
func DecodeEmbedded(src []byte) (data []byte, n int, err error) {
	i := 0
	for i < len(src) {
		b := src[i]
		switch b {
		case terminator:
			return data, i + 1, nil
		case escapeMarker:
			if i+1 >= len(src) {
				return nil, 0, errors.New("truncated escape sequence")
			}
			switch src[i+1] {
			case escapedFF:
				data = append(data, 0xFF)
			case escapedFE:
				data = append(data, 0xFE)
			default:
				return nil, 0, errors.Newf("invalid escape code 0x%02x", src[i+1])
			}
			i += 2
		default:
			data = append(data, b-1)
			i++
		}
	}
	return nil, 0, errors.New("missing terminator")
}
