package view

import "time"

// EmptyCell is shown for missing values.
const EmptyCell = "—"

const displayLayout = "Jan 2, 2006"

// RFC 3339 parsing also accepts fractional seconds
var dateLayouts = []string{time.DateOnly, time.RFC3339}

// FormatDate renders a stored date as "Jan 2, 2006". Unparsable values are
// shown as stored.
func FormatDate(value string) string {
	if value == "" {
		return EmptyCell
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(displayLayout)
		}
	}
	return value
}

// FormatTime renders a timestamp as "Jan 2, 2006", or EmptyCell when zero.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return EmptyCell
	}
	return t.Format(displayLayout)
}
