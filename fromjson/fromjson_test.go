package fromjson_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaisql/tuplekey/fromjson"
	"github.com/chaisql/tuplekey/value"
)

func TestParseTopLevelKinds(t *testing.T) {
	tests := []struct {
		json string
		kind value.Kind
	}{
		{"null", value.Null},
		{"true", value.True},
		{"false", value.False},
		{"42", value.PosNumber},
		{"-42.5", value.NegNumber},
		{`"hello"`, value.Text},
		{"[]", value.List},
		{"{}", value.Map},
	}

	for _, test := range tests {
		v, err := fromjson.Parse([]byte(test.json))
		require.NoError(t, err)
		require.Equal(t, test.kind, v.Kind())
	}
}

func TestParseObjectSortsFieldsByName(t *testing.T) {
	v, err := fromjson.Parse([]byte(`{"zeta": 1, "alpha": 2}`))
	require.NoError(t, err)

	entries := value.As[[]value.MapEntry](v)
	require.Len(t, entries, 2)
	require.Equal(t, "alpha", value.As[string](entries[0].Key))
	require.Equal(t, "zeta", value.As[string](entries[1].Key))
}

func TestParseNestedArray(t *testing.T) {
	v, err := fromjson.Parse([]byte(`{"tags": ["a", "b", "c"]}`))
	require.NoError(t, err)

	entries := value.As[[]value.MapEntry](v)
	require.Len(t, entries, 1)

	elems := value.As[[]value.Value](entries[0].Value)
	require.Len(t, elems, 3)
	require.Equal(t, "a", value.As[string](elems[0]))
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := fromjson.Parse([]byte(`{not valid`))
	require.Error(t, err)
}
