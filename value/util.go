package value

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

func isValidUTF8(s string) bool {
	return utf8.ValidString(s)
}

func strconvFormat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// sortFieldsByName sorts fields in place by ascending Name, breaking the tie
// on original position for equal names so NewMapFromFields stays
// deterministic even when a caller passes duplicate keys.
func sortFieldsByName(fields []Field) {
	slices.SortStableFunc(fields, func(a, b Field) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})
}
