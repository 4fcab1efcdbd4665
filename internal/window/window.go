// Package window resolves the weekly aggregation window.
package window

import "time"

// Resolve returns the inclusive [start, end] aggregation window for now.
// end is now itself; start is local midnight of the most recent Monday.
// A run executed on a Monday uses the Monday of the previous week, so a
// run on the week boundary still covers a full week instead of an empty
// window.
func Resolve(now time.Time) (start, end time.Time) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	if offset == 0 {
		offset = 7 // Monday runs cover the prior week
	}

	return midnight.AddDate(0, 0, -offset), now
}
