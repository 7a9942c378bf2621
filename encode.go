package tuplekey

import (
	"github.com/chaisql/tuplekey/internal/binarysort"
	"github.com/chaisql/tuplekey/value"
)

// Options tunes Encode and Decode. The zero Options uses DefaultMaxDepth.
type Options struct {
	// MaxDepth bounds composite nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Encode returns the binary encoding of v, or a typed error if v cannot be
// encoded: BadValue for a disallowed variant (HIGH, or a numeric/date value
// that failed its own construction check), or TooDeep if v nests composites
// past the configured limit.
func Encode(v value.Value) ([]byte, error) {
	return EncodeWithOptions(v, Options{})
}

// EncodeWithOptions is Encode with an explicit depth limit.
func EncodeWithOptions(v value.Value, opts Options) ([]byte, error) {
	e := &encoder{maxDepth: opts.maxDepth()}
	return e.encodeTop(nil, v)
}

// EncodeListPrefix writes elems as the leading elements of a LIST encoding,
// tag byte included but the closing terminator omitted. The result is a
// valid byte prefix for every encoded LIST value whose first len(elems)
// elements compare equal to elems: combined with HighByte as an exclusive
// upper bound, it drives a half-open range scan over a key/value store
// ordered by Compare.
func EncodeListPrefix(elems []value.Value) ([]byte, error) {
	e := &encoder{maxDepth: DefaultMaxDepth}
	buf := append([]byte{}, tagOf[value.List])
	var err error
	for _, el := range elems {
		buf, err = e.encodeEmbedded(buf, el, 1)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

type encoder struct {
	maxDepth int
}

func (e *encoder) encodeTop(buf []byte, v value.Value) ([]byte, error) {
	tag, ok := tagFor(v.Kind())
	if !ok || v.Kind() == value.HighSentinel {
		return nil, badValue("value of kind %s cannot be encoded", v.Kind())
	}

	if v.Kind().IsNullary() {
		return append(buf, tag), nil
	}

	buf = append(buf, tag)

	switch {
	case v.Kind().IsNumeric():
		return e.appendNumeric(buf, v), nil
	case v.Kind() == value.Bytes:
		return append(buf, value.As[[]byte](v)...), nil
	case v.Kind() == value.Text, v.Kind() == value.Code:
		return append(buf, value.As[string](v)...), nil
	case v.Kind() == value.List:
		return e.encodeList(buf, value.As[[]value.Value](v), 1)
	case v.Kind() == value.Set:
		return e.encodeSet(buf, value.As[[]value.Value](v), 1)
	case v.Kind() == value.Map:
		return e.encodeMap(buf, value.As[[]value.MapEntry](v), 1)
	}

	return nil, unsupported("no encoding rule for kind %s", v.Kind())
}

func (e *encoder) appendNumeric(buf []byte, v value.Value) []byte {
	f := value.As[float64](v)
	if v.Kind().IsNegative() {
		return binarysort.AppendFloat64Complement(buf, f)
	}
	return binarysort.AppendFloat64Raw(buf, f)
}

// encodeEmbedded writes v in the form it takes inside a composite: nullary
// tags and fixed-width numerics are written exactly as at top level (their
// width is predictable, so they need no terminator); variable-length
// scalars go through the shift-and-escape scheme so a literal terminator
// byte can never appear inside them; nested composites recurse and supply
// their own terminator.
func (e *encoder) encodeEmbedded(buf []byte, v value.Value, depth int) ([]byte, error) {
	if depth > e.maxDepth {
		return nil, tooDeep(e.maxDepth)
	}

	tag, ok := tagFor(v.Kind())
	if !ok || v.Kind() == value.HighSentinel {
		return nil, badValue("value of kind %s cannot be encoded", v.Kind())
	}

	if v.Kind().IsNullary() {
		return append(buf, tag), nil
	}

	buf = append(buf, tag)

	switch {
	case v.Kind().IsNumeric():
		return e.appendNumeric(buf, v), nil
	case v.Kind() == value.Bytes:
		return binarysort.AppendEmbedded(buf, value.As[[]byte](v)), nil
	case v.Kind() == value.Text, v.Kind() == value.Code:
		return binarysort.AppendEmbedded(buf, []byte(value.As[string](v))), nil
	case v.Kind() == value.List:
		return e.encodeList(buf, value.As[[]value.Value](v), depth+1)
	case v.Kind() == value.Set:
		return e.encodeSet(buf, value.As[[]value.Value](v), depth+1)
	case v.Kind() == value.Map:
		return e.encodeMap(buf, value.As[[]value.MapEntry](v), depth+1)
	}

	return nil, unsupported("no encoding rule for kind %s", v.Kind())
}

func (e *encoder) encodeList(buf []byte, elems []value.Value, depth int) ([]byte, error) {
	if depth > e.maxDepth {
		return nil, tooDeep(e.maxDepth)
	}
	var err error
	for _, el := range elems {
		buf, err = e.encodeEmbedded(buf, el, depth)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, terminator), nil
}

func (e *encoder) encodeSet(buf []byte, elems []value.Value, depth int) ([]byte, error) {
	return e.encodeList(buf, value.SortedElements(elems), depth)
}

func (e *encoder) encodeMap(buf []byte, entries []value.MapEntry, depth int) ([]byte, error) {
	if depth > e.maxDepth {
		return nil, tooDeep(e.maxDepth)
	}
	var err error
	for _, entry := range entries {
		buf, err = e.encodeEmbedded(buf, entry.Key, depth)
		if err != nil {
			return nil, err
		}
		buf, err = e.encodeEmbedded(buf, entry.Value, depth)
		if err != nil {
			return nil, err
		}
	}
	return append(buf, terminator), nil
}
