// Package dateutil parses and formats the timestamps that feed the codec's
// NEG_DATE/POS_DATE variants, using github.com/golang-module/carbon/v2 for
// the actual calendar arithmetic and timezone handling.
package dateutil

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"

	"github.com/chaisql/tuplekey/value"
)

// Parse interprets s as a timestamp in the given IANA timezone (e.g. "UTC")
// and returns the lattice date Value it encodes to. Layout detection is
// carbon's: RFC 3339, SQL datetime, and a handful of common variants are
// all accepted without an explicit layout string.
func Parse(s, timezone string) (value.Value, error) {
	c := carbon.Parse(s, timezone)
	if c.Error != nil {
		return value.Value{}, errors.WithStack(&value.BadValueError{
			Reason: fmt.Sprintf("dateutil: invalid timestamp %q: %v", s, c.Error),
		})
	}
	return value.NewDate(c.ToStdTime())
}

// Format renders a date Value back to an RFC 3339 string in UTC. It does
// not check v's kind (see value.DateTime); callers should check v.Kind()
// first.
func Format(v value.Value) string {
	return carbon.CreateFromStdTime(value.DateTime(v)).ToRfc3339String()
}

// Now returns the current instant as a lattice date Value.
func Now() (value.Value, error) {
	return value.NewDate(time.Now())
}
