// package notification provides the timestamp and push-type values that
// accompany an APNs payload.
package notification

import (
	"strconv"
	"time"
)

// EpochTime represents a UNIX timestamp in seconds.
type EpochTime int64

// NewEpochTime creates a new EpochTime from a time.Time object.
// It returns a pointer to the EpochTime value.
func NewEpochTime(t time.Time) *EpochTime {
	if t.IsZero() {
		v := EpochTime(0)
		return &v
	}
	v := EpochTime(t.UTC().Unix())
	return &v
}

// Time converts e back to a time.Time in UTC.
func (e EpochTime) Time() time.Time {
	return time.Unix(int64(e), 0).UTC()
}

// String returns the string representation of the UNIX timestamp.
func (e EpochTime) String() string {
	return strconv.FormatInt(int64(e), 10)
}
