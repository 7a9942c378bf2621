package tuplekey

import (
	"unicode/utf8"

	"github.com/chaisql/tuplekey/internal/binarysort"
	"github.com/chaisql/tuplekey/value"
)

// Decode parses a complete buffer produced by Encode, or a typed error:
// Malformed for an unknown tag, a truncated scalar, a missing terminator, a
// bad escape sequence, or trailing bytes after a complete value, or TooDeep
// if the encoded nesting exceeds the configured limit.
func Decode(buf []byte) (value.Value, error) {
	return DecodeWithOptions(buf, Options{})
}

// DecodeWithOptions is Decode with an explicit depth limit.
func DecodeWithOptions(buf []byte, opts Options) (value.Value, error) {
	d := &decoder{maxDepth: opts.maxDepth()}
	v, n, err := d.decodeValue(buf, 0, true)
	if err != nil {
		return value.Value{}, err
	}
	if n != len(buf) {
		return value.Value{}, malformed("%d trailing byte(s) after complete value", len(buf)-n)
	}
	return v, nil
}

type decoder struct {
	maxDepth int
}

// decodeValue reads one value from the start of buf and returns it along
// with the number of bytes consumed. top distinguishes the untruncated,
// unescaped top-level form of a variable-length scalar from its
// escaped-and-terminated embedded form; composites use the same form in
// both contexts.
func (d *decoder) decodeValue(buf []byte, depth int, top bool) (value.Value, int, error) {
	if depth > d.maxDepth {
		return value.Value{}, 0, tooDeep(d.maxDepth)
	}
	if len(buf) == 0 {
		return value.Value{}, 0, malformed("empty buffer")
	}

	tag := buf[0]
	kind, ok := kindOfTag[tag]
	if !ok {
		return value.Value{}, 0, malformed("unknown tag byte 0x%02x", tag)
	}
	if kind == value.HighSentinel {
		return value.Value{}, 0, malformed("HIGH sentinel cannot appear in an encoded value")
	}

	if kind.IsNullary() {
		return nullaryValue(kind), 1, nil
	}

	if kind.IsNumeric() {
		return d.decodeNumeric(buf, kind)
	}

	switch kind {
	case value.Bytes:
		return d.decodeBytes(buf, top)
	case value.Text:
		return d.decodeText(buf, top)
	case value.Code:
		return d.decodeCode(buf, top)
	case value.List:
		return d.decodeList(buf, depth)
	case value.Set:
		return d.decodeSet(buf, depth)
	case value.Map:
		return d.decodeMap(buf, depth)
	}

	return value.Value{}, 0, malformed("no decoding rule for tag 0x%02x", tag)
}

func nullaryValue(kind value.Kind) value.Value {
	switch kind {
	case value.Bottom:
		return value.NewBottom()
	case value.Null:
		return value.NewNull()
	case value.False:
		return value.NewBool(false)
	case value.True:
		return value.NewBool(true)
	case value.NegInfinity:
		return value.NewNegInfinity()
	case value.PosInfinity:
		return value.NewPosInfinity()
	}
	return value.Value{}
}

func (d *decoder) decodeNumeric(buf []byte, kind value.Kind) (value.Value, int, error) {
	if len(buf) < 9 {
		return value.Value{}, 0, malformed("truncated numeric payload")
	}
	var f float64
	var err error
	if kind.IsNegative() {
		f, err = binarysort.DecodeFloat64Complement(buf[1:9])
	} else {
		f, err = binarysort.DecodeFloat64Raw(buf[1:9])
	}
	if err != nil {
		return value.Value{}, 0, malformed("%s", err)
	}

	switch kind {
	case value.NegNumber, value.PosNumber:
		v, verr := value.NewNumber(f)
		if verr != nil {
			return value.Value{}, 0, malformed("%s", verr)
		}
		return v, 9, nil
	case value.NegDate, value.PosDate:
		v, verr := value.NewDateFromMillis(f)
		if verr != nil {
			return value.Value{}, 0, malformed("%s", verr)
		}
		return v, 9, nil
	}
	return value.Value{}, 0, malformed("unreachable numeric kind")
}

func (d *decoder) decodeBytes(buf []byte, top bool) (value.Value, int, error) {
	if top {
		return value.NewBytes(buf[1:]), len(buf), nil
	}
	data, n, err := binarysort.DecodeEmbedded(buf[1:])
	if err != nil {
		return value.Value{}, 0, malformed("%s", err)
	}
	return value.NewBytes(data), 1 + n, nil
}

func (d *decoder) decodeText(buf []byte, top bool) (value.Value, int, error) {
	s, n, err := d.decodeStringPayload(buf, top)
	if err != nil {
		return value.Value{}, 0, err
	}
	v, verr := value.NewText(s)
	if verr != nil {
		return value.Value{}, 0, malformed("%s", verr)
	}
	return v, n, nil
}

func (d *decoder) decodeCode(buf []byte, top bool) (value.Value, int, error) {
	s, n, err := d.decodeStringPayload(buf, top)
	if err != nil {
		return value.Value{}, 0, err
	}
	return value.NewCode(s), n, nil
}

func (d *decoder) decodeStringPayload(buf []byte, top bool) (string, int, error) {
	if top {
		s := string(buf[1:])
		if !utf8.ValidString(s) {
			return "", 0, malformed("invalid UTF-8 in text payload")
		}
		return s, len(buf), nil
	}
	data, n, err := binarysort.DecodeEmbedded(buf[1:])
	if err != nil {
		return "", 0, malformed("%s", err)
	}
	s := string(data)
	if !utf8.ValidString(s) {
		return "", 0, malformed("invalid UTF-8 in text payload")
	}
	return s, 1 + n, nil
}

func (d *decoder) decodeList(buf []byte, depth int) (value.Value, int, error) {
	elems, n, err := d.decodeChildren(buf[1:], depth+1)
	if err != nil {
		return value.Value{}, 0, err
	}
	return value.NewList(elems), 1 + n, nil
}

func (d *decoder) decodeSet(buf []byte, depth int) (value.Value, int, error) {
	elems, n, err := d.decodeChildren(buf[1:], depth+1)
	if err != nil {
		return value.Value{}, 0, err
	}
	return value.NewSet(elems), 1 + n, nil
}

func (d *decoder) decodeMap(buf []byte, depth int) (value.Value, int, error) {
	if depth+1 > d.maxDepth {
		return value.Value{}, 0, tooDeep(d.maxDepth)
	}
	offset := 1
	var entries []value.MapEntry
	for {
		if offset >= len(buf) {
			return value.Value{}, 0, malformed("missing map terminator")
		}
		if buf[offset] == terminator {
			offset++
			break
		}

		k, n, err := d.decodeValue(buf[offset:], depth+1, false)
		if err != nil {
			return value.Value{}, 0, err
		}
		offset += n

		if offset >= len(buf) {
			return value.Value{}, 0, malformed("map key without matching value")
		}
		val, n, err := d.decodeValue(buf[offset:], depth+1, false)
		if err != nil {
			return value.Value{}, 0, err
		}
		offset += n

		entries = append(entries, value.MapEntry{Key: k, Value: val})
	}
	return value.NewMap(entries), offset, nil
}

// decodeChildren reads embedded values from buf until an unescaped
// terminator byte, returning the values and the number of bytes consumed
// including that terminator.
func (d *decoder) decodeChildren(buf []byte, depth int) ([]value.Value, int, error) {
	if depth > d.maxDepth {
		return nil, 0, tooDeep(d.maxDepth)
	}
	offset := 0
	var elems []value.Value
	for {
		if offset >= len(buf) {
			return nil, 0, malformed("missing terminator")
		}
		if buf[offset] == terminator {
			offset++
			break
		}

		v, n, err := d.decodeValue(buf[offset:], depth, false)
		if err != nil {
			return nil, 0, err
		}
		offset += n
		elems = append(elems, v)
	}
	return elems, offset, nil
}
