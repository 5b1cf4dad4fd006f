package status

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatSize renders a byte count for the size column.
func FormatSize(n uint64) string {
	return humanize.Bytes(n)
}

// FormatModTime renders a modification time for the report: the absolute
// local timestamp followed by a relative phrase, e.g.
// "2026-08-19 3:04PM (3 days ago)".
func FormatModTime(t time.Time) string {
	return t.Local().Format("2006-01-02 3:04PM") + " (" + humanize.Time(t) + ")"
}
