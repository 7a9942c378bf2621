package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chaisql/tuplekey/value"
)

func TestNewNumberRejectsNaN(t *testing.T) {
	_, err := value.NewNumber(math.NaN())
	require.Error(t, err)
}

func TestNewNumberSign(t *testing.T) {
	pos, err := value.NewNumber(1)
	require.NoError(t, err)
	require.Equal(t, value.PosNumber, pos.Kind())

	neg, err := value.NewNumber(-1)
	require.NoError(t, err)
	require.Equal(t, value.NegNumber, neg.Kind())

	zero, err := value.NewNumber(0)
	require.NoError(t, err)
	require.Equal(t, value.PosNumber, zero.Kind())

	negZero, err := value.NewNumber(math.Copysign(0, -1))
	require.NoError(t, err)
	require.Equal(t, value.NegNumber, negZero.Kind())
}

func TestNewTextRejectsInvalidUTF8(t *testing.T) {
	_, err := value.NewText(string([]byte{0xff, 0xfe}))
	require.Error(t, err)
}

func TestNewMapFromFieldsSortsKeys(t *testing.T) {
	one, _ := value.NewNumber(1)
	two, _ := value.NewNumber(2)

	m, err := value.NewMapFromFields([]value.Field{
		{Name: "zeta", Value: two},
		{Name: "alpha", Value: one},
	})
	require.NoError(t, err)

	entries := value.As[[]value.MapEntry](m)
	require.Len(t, entries, 2)
	require.Equal(t, "alpha", value.As[string](entries[0].Key))
	require.Equal(t, "zeta", value.As[string](entries[1].Key))
}

func TestCompareTotalOrder(t *testing.T) {
	small, _ := value.NewNumber(-5)
	big, _ := value.NewNumber(5)

	require.Equal(t, -1, value.Compare(small, big))
	require.Equal(t, 1, value.Compare(big, small))
	require.Equal(t, 0, value.Compare(small, small))

	require.Equal(t, -1, value.Compare(value.NewNull(), value.NewBool(false)))
	require.Equal(t, -1, value.Compare(value.NewBottom(), value.NewNull()))
}

func TestCompareListPrefix(t *testing.T) {
	short := value.NewList([]value.Value{value.NewBottom()})
	long := value.NewList([]value.Value{value.NewBottom(), value.NewBottom()})

	require.Equal(t, -1, value.Compare(short, long))
}

func TestSortedElementsCanonicalizesSets(t *testing.T) {
	one, _ := value.NewNumber(1)
	two, _ := value.NewNumber(2)
	three, _ := value.NewNumber(3)

	a := value.SortedElements([]value.Value{three, one, two})
	b := value.SortedElements([]value.Value{two, three, one})

	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, 0, value.Compare(a[i], b[i]))
	}
}
