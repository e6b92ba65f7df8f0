package volume

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Column identifies one snapshot column in the sheet: its 1-based
// position, its full header text, and the timestamp parsed from that
// header.
type Column struct {
	Index  int
	Header string
	Time   time.Time
}

// headerTimePattern matches the embedded timestamp in a snapshot
// header, e.g. "Snapshot (2025-10-01 12:01)".
var headerTimePattern = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2} \d{2}:\d{2})\)`)

// ParseHeaderTime extracts the timestamp embedded in a column header.
// The timestamp is interpreted in the given civil zone. The second
// return value is false when the header carries no parseable timestamp.
func ParseHeaderTime(header string, loc *time.Location) (time.Time, bool) {
	match := headerTimePattern.FindStringSubmatch(header)
	if match == nil {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04", match[1], loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// SnapshotColumns filters the header row down to snapshot columns:
// headers starting with prefix and carrying a parseable embedded
// timestamp. Anything else is silently excluded. The result is sorted
// ascending by timestamp.
func SnapshotColumns(headers []string, prefix string, loc *time.Location) []Column {
	var cols []Column
	for i, header := range headers {
		if !strings.HasPrefix(header, prefix) {
			continue
		}
		ts, ok := ParseHeaderTime(header, loc)
		if !ok {
			continue
		}
		cols = append(cols, Column{Index: i + 1, Header: header, Time: ts})
	}

	sort.Slice(cols, func(a, b int) bool {
		return cols[a].Time.Before(cols[b].Time)
	})
	return cols
}
