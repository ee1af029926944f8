package format

import "time"

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Date renders an ISO date string in long US form ("February 7, 2026").
// Unparseable input renders as "-" rather than failing; a half-typed date in
// a live editor is not an error.
func Date(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return "-"
}
