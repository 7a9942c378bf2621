package tuplekey_test

import (
	"encoding/hex"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/chaisql/tuplekey"
	"github.com/chaisql/tuplekey/value"
)

// structuralForm flattens a Value into plain Go data so cmp.Diff can walk
// it without needing to reach into Value's unexported fields.
func structuralForm(v value.Value) any {
	switch v.Kind() {
	case value.List, value.Set:
		elems := value.As[[]value.Value](v)
		if v.Kind() == value.Set {
			elems = value.SortedElements(elems)
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = structuralForm(e)
		}
		return [2]any{v.Kind().String(), out}
	case value.Map:
		entries := value.As[[]value.MapEntry](v)
		out := make([][2]any, len(entries))
		for i, e := range entries {
			out[i] = [2]any{structuralForm(e.Key), structuralForm(e.Value)}
		}
		return [2]any{v.Kind().String(), out}
	default:
		return [2]any{v.Kind().String(), v.V()}
	}
}

func mustParseRFC3339(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tm
}

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func mustNumber(t *testing.T, f float64) value.Value {
	t.Helper()
	v, err := value.NewNumber(f)
	require.NoError(t, err)
	return v
}

func mustText(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.NewText(s)
	require.NoError(t, err)
	return v
}

// TestScenarios reproduces the literal encoded-bytes checks: each row's
// value must encode to exactly the given hex string.
func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		v    value.Value
		hex  string
	}{
		{"bottom", value.NewBottom(), "10"},
		{"null", value.NewNull(), "11"},
		{"false", value.NewBool(false), "20"},
		{"true", value.NewBool(true), "21"},
		{"number 12345", mustNumber(t, 12345), "42 40 c8 1c 80 00 00 00 00"},
		{"number -12345", mustNumber(t, -12345), "41 bf 37 e3 7f ff ff ff ff"},
		{"number -0", mustNumber(t, math.Copysign(0, -1)), "41 ff ff ff ff ff ff ff ff"},
		{"number 0", mustNumber(t, 0), "42 00 00 00 00 00 00 00 00"},
		{"neg infinity", value.NewNegInfinity(), "40"},
		{"pos infinity", value.NewPosInfinity(), "43"},
		{"text foo", mustText(t, "foo"), "70 66 6f 6f"},
		{"bytes top level", value.NewBytes([]byte{0xFF, 0x00, 0xFE, 0x01}), "60 ff 00 fe 01"},
		{
			"list [true, -1.2345]",
			value.NewList([]value.Value{value.NewBool(true), mustNumber(t, -1.2345)}),
			"a0 21 41 c0 0c 3f 7c ed 91 68 72 00",
		},
		{
			"list [foo] shift scheme",
			value.NewList([]value.Value{mustText(t, "foo")}),
			"a0 70 67 70 70 00 00",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := tuplekey.Encode(test.v)
			require.NoError(t, err)
			require.Equal(t, hexBytes(t, test.hex), got)
		})
	}
}

// TestRoundTrip covers property 1: decode(encode(v)) = v for one
// representative of every variant, including the sign of zero and the
// distinction between Bottom and Null.
func TestRoundTrip(t *testing.T) {
	date, err := value.NewDate(mustParseRFC3339(t, "2000-01-01T00:00:00Z"))
	require.NoError(t, err)
	negDate, err := value.NewDate(mustParseRFC3339(t, "1960-01-01T00:00:00Z"))
	require.NoError(t, err)

	m, err := value.NewMapFromFields([]value.Field{
		{Name: "bar", Value: mustNumber(t, 1)},
	})
	require.NoError(t, err)

	values := []value.Value{
		value.NewBottom(),
		value.NewNull(),
		value.NewBool(false),
		value.NewBool(true),
		value.NewNegInfinity(),
		value.NewPosInfinity(),
		mustNumber(t, 0),
		mustNumber(t, math.Copysign(0, -1)),
		mustNumber(t, 42),
		mustNumber(t, -1.1),
		date,
		negDate,
		value.NewBytes([]byte{0xFF, 0x00, 0xFE, 0x01}),
		mustText(t, "foo √"),
		mustText(t, ""),
		value.NewCode("(x) => x + 1"),
		value.NewList(nil),
		value.NewList([]value.Value{value.NewBottom()}),
		value.NewSet([]value.Value{mustNumber(t, 3), mustNumber(t, 1), mustNumber(t, 2)}),
		m,
	}

	for _, v := range values {
		buf, err := tuplekey.Encode(v)
		require.NoError(t, err)

		got, err := tuplekey.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, 0, value.Compare(v, got), "round trip mismatch for %v", v)
	}
}

// TestRoundTripStructural cross-checks the same round trip TestRoundTrip
// covers, but by diffing a flattened structural form instead of using the
// lattice's own comparator, so a bug shared between Compare and the codec
// couldn't hide a mismatch from both tests at once.
func TestRoundTripStructural(t *testing.T) {
	v := value.NewList([]value.Value{
		value.NewBool(true),
		mustNumber(t, -1.2345),
		mustText(t, "foo √"),
		value.NewSet([]value.Value{mustNumber(t, 2), mustNumber(t, 1)}),
	})

	buf, err := tuplekey.Encode(v)
	require.NoError(t, err)

	got, err := tuplekey.Decode(buf)
	require.NoError(t, err)

	if diff := cmp.Diff(structuralForm(v), structuralForm(got)); diff != "" {
		t.Fatalf("round trip structural mismatch (-want +got):\n%s", diff)
	}
}

// TestNegativeZeroDistinct checks that -0 and +0 keep distinct encodings
// while sorting adjacently.
func TestNegativeZeroDistinct(t *testing.T) {
	neg, err := tuplekey.Encode(mustNumber(t, math.Copysign(0, -1)))
	require.NoError(t, err)
	pos, err := tuplekey.Encode(mustNumber(t, 0))
	require.NoError(t, err)

	require.NotEqual(t, neg, pos)
	require.Equal(t, -1, tuplekey.Compare(neg, pos))
}

// TestOrderPreservation covers property 2 across a representative sample
// spanning every variant.
func TestOrderPreservation(t *testing.T) {
	date, err := value.NewDate(mustParseRFC3339(t, "2000-01-01T00:00:00Z"))
	require.NoError(t, err)

	ordered := []value.Value{
		value.NewBottom(),
		value.NewNull(),
		value.NewBool(false),
		value.NewBool(true),
		value.NewNegInfinity(),
		mustNumber(t, -1.1),
		mustNumber(t, 42),
		value.NewPosInfinity(),
		date,
		value.NewBytes([]byte{0x01}),
		value.NewBytes([]byte{0x02}),
		mustText(t, ""),
		mustText(t, "foo"),
		value.NewSet(nil),
		value.NewList(nil),
		value.NewList([]value.Value{value.NewBottom()}),
		value.NewMap(nil),
		value.NewCode("a"),
		value.NewCode("b"),
	}

	var encoded [][]byte
	for _, v := range ordered {
		buf, err := tuplekey.Encode(v)
		require.NoError(t, err)
		encoded = append(encoded, buf)
	}

	for i := 0; i < len(encoded)-1; i++ {
		require.Equal(t, -1, tuplekey.Compare(encoded[i], encoded[i+1]),
			"expected encoding %d to sort before %d", i, i+1)
		require.Equal(t, -1, value.Compare(ordered[i], ordered[i+1]))
	}
}

// TestCanonicalSets covers property 4: any two permutations of the same
// multiset encode identically.
func TestCanonicalSets(t *testing.T) {
	a := value.NewSet([]value.Value{mustNumber(t, 1), mustNumber(t, 2), mustNumber(t, 3)})
	b := value.NewSet([]value.Value{mustNumber(t, 3), mustNumber(t, 1), mustNumber(t, 2)})

	encA, err := tuplekey.Encode(a)
	require.NoError(t, err)
	encB, err := tuplekey.Encode(b)
	require.NoError(t, err)

	require.Equal(t, encA, encB)
}

// TestCompareIdempotence covers property 5.
func TestCompareIdempotence(t *testing.T) {
	x, err := tuplekey.Encode(mustNumber(t, 1))
	require.NoError(t, err)
	y, err := tuplekey.Encode(mustNumber(t, 2))
	require.NoError(t, err)
	z, err := tuplekey.Encode(mustNumber(t, 3))
	require.NoError(t, err)

	require.Equal(t, 0, tuplekey.Compare(x, x))
	require.Equal(t, tuplekey.Compare(x, y), -tuplekey.Compare(y, x))
	require.Less(t, tuplekey.Compare(x, y), 0)
	require.Less(t, tuplekey.Compare(y, z), 0)
	require.Less(t, tuplekey.Compare(x, z), 0)
}

// TestRejection covers property 6.
func TestRejection(t *testing.T) {
	_, err := value.NewNumber(math.NaN())
	require.Error(t, err)

	_, err = tuplekey.Encode(value.NewHigh())
	require.Error(t, err)
	require.True(t, tuplekey.IsBadValue(err))
}

// TestPrefixFreeness covers property 3: splitting a list encoding back into
// children is unambiguous.
func TestPrefixFreeness(t *testing.T) {
	v := value.NewList([]value.Value{
		mustText(t, "ab"),
		mustText(t, "abc"),
		value.NewBytes([]byte{0xFF, 0xFE, 0x00, 0x01}),
	})

	buf, err := tuplekey.Encode(v)
	require.NoError(t, err)

	got, err := tuplekey.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, 0, value.Compare(v, got))
}

func TestMalformedInputs(t *testing.T) {
	t.Run("unknown tag", func(t *testing.T) {
		_, err := tuplekey.Decode([]byte{0x01})
		require.True(t, tuplekey.IsMalformed(err))
	})

	t.Run("truncated number", func(t *testing.T) {
		_, err := tuplekey.Decode([]byte{0x42, 0x00, 0x00})
		require.True(t, tuplekey.IsMalformed(err))
	})

	t.Run("missing terminator", func(t *testing.T) {
		_, err := tuplekey.Decode([]byte{0xA0, 0x21})
		require.True(t, tuplekey.IsMalformed(err))
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := tuplekey.Decode([]byte{0x10, 0x10})
		require.True(t, tuplekey.IsMalformed(err))
	})

	t.Run("high sentinel", func(t *testing.T) {
		_, err := tuplekey.Decode([]byte{tuplekey.HighByte})
		require.True(t, tuplekey.IsMalformed(err))
	})
}

func TestTooDeep(t *testing.T) {
	inner := value.NewList(nil)
	for i := 0; i < 10; i++ {
		inner = value.NewList([]value.Value{inner})
	}

	_, err := tuplekey.EncodeWithOptions(inner, tuplekey.Options{MaxDepth: 3})
	require.True(t, tuplekey.IsTooDeep(err))
}
