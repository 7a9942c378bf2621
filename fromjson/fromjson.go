// Package fromjson builds lattice values out of raw JSON, using
// github.com/buger/jsonparser to walk the document without a full unmarshal
// pass. It exists to feed real-world records into the codec: JSON objects
// become Maps with sorted text keys, JSON arrays become Lists, and scalars
// map onto the closest lattice variant.
package fromjson

import (
	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"

	"github.com/chaisql/tuplekey/value"
)

// Parse decodes a single JSON value (object, array, or scalar) at the top
// level of data into a lattice Value.
func Parse(data []byte) (value.Value, error) {
	v, dt, _, err := jsonparser.Get(data)
	if err != nil {
		return value.Value{}, errors.Wrap(err, "fromjson")
	}
	return parseValue(dt, v)
}

func parseValue(dataType jsonparser.ValueType, data []byte) (value.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return value.NewNull(), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return value.Value{}, errors.Wrap(err, "fromjson")
		}
		return value.NewBool(b), nil
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return value.Value{}, errors.Wrap(err, "fromjson")
		}
		return value.NewNumber(f)
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return value.Value{}, errors.Wrap(err, "fromjson")
		}
		return value.NewText(s)
	case jsonparser.Array:
		return parseArray(data)
	case jsonparser.Object:
		return parseObject(data)
	default:
		return value.Value{}, errors.Newf("fromjson: unsupported JSON value type %v", dataType)
	}
}

func parseArray(data []byte) (value.Value, error) {
	var elems []value.Value
	var elemErr error

	_, err := jsonparser.ArrayEach(data, func(v []byte, dt jsonparser.ValueType, offset int, err error) {
		if elemErr != nil || err != nil {
			if err != nil {
				elemErr = err
			}
			return
		}
		parsed, perr := parseValue(dt, v)
		if perr != nil {
			elemErr = perr
			return
		}
		elems = append(elems, parsed)
	})
	if err != nil {
		return value.Value{}, errors.Wrap(err, "fromjson")
	}
	if elemErr != nil {
		return value.Value{}, elemErr
	}

	return value.NewList(elems), nil
}

func parseObject(data []byte) (value.Value, error) {
	var fields []value.Field
	var fieldErr error

	err := jsonparser.ObjectEach(data, func(key, v []byte, dt jsonparser.ValueType, offset int) error {
		parsed, perr := parseValue(dt, v)
		if perr != nil {
			fieldErr = perr
			return perr
		}
		fields = append(fields, value.Field{Name: string(key), Value: parsed})
		return nil
	})
	if err != nil {
		return value.Value{}, errors.Wrap(err, "fromjson")
	}
	if fieldErr != nil {
		return value.Value{}, fieldErr
	}

	return value.NewMapFromFields(fields)
}
