package render

import "time"

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}
