package dateutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaisql/tuplekey/dateutil"
	"github.com/chaisql/tuplekey/value"
)

func TestParseUTC(t *testing.T) {
	v, err := dateutil.Parse("2000-01-01 00:00:00", "UTC")
	require.NoError(t, err)
	require.Equal(t, value.PosDate, v.Kind())
}

func TestParseBeforeEpoch(t *testing.T) {
	v, err := dateutil.Parse("1960-06-15 00:00:00", "UTC")
	require.NoError(t, err)
	require.Equal(t, value.NegDate, v.Kind())
}

func TestParseInvalid(t *testing.T) {
	_, err := dateutil.Parse("not a date", "UTC")
	require.Error(t, err)
}

func TestFormatRoundTrip(t *testing.T) {
	v, err := dateutil.Parse("2021-01-01T10:05:59Z", "UTC")
	require.NoError(t, err)

	s := dateutil.Format(v)
	v2, err := dateutil.Parse(s, "UTC")
	require.NoError(t, err)

	require.Equal(t, 0, value.Compare(v, v2))
}
