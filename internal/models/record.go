package models

import "time"

// TimestampLayout is the layout of every persisted date string.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is implemented by every entity stored in a collection. RecordID
// exposes the auto-assigned identifier used for next-id computation.
type Record interface {
	RecordID() int
}

// FormatTimestamp renders t in the persisted date layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
