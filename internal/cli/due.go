package cli

import (
	"strings"
	"time"
)

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseDue accepts an absolute time, a date (09:00 that day), "today" or
// "tomorrow" with an optional HH:MM, or an offset like "+90m".
func parseDue(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, usageErr("empty due date")
	}
	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return time.Time{}, usageErr("bad due offset %q", s)
		}
		return now.Add(d), nil
	}

	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t.Add(9 * time.Hour), nil
	}

	day, clock, _ := strings.Cut(strings.ToLower(s), " ")
	var base time.Time
	local := now.In(loc)
	switch day {
	case "today":
		base = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	case "tomorrow":
		base = time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	default:
		return time.Time{}, usageErr("bad due date %q (want YYYY-MM-DD [HH:MM], today|tomorrow [HH:MM], or +duration)", s)
	}
	if clock == "" {
		return base.Add(9 * time.Hour), nil
	}
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, usageErr("bad time of day %q", clock)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}

func formatDue(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}
