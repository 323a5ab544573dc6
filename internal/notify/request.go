package notify

import (
	"context"
	"time"
)

// CalendarTrigger fires once at a wall-clock minute. Seconds are not kept.
type CalendarTrigger struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Day    int        `json:"day"`
	Hour   int        `json:"hour"`
	Minute int        `json:"minute"`
}

// TriggerAt extracts the calendar components of t in loc.
func TriggerAt(t time.Time, loc *time.Location) CalendarTrigger {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return CalendarTrigger{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Time resolves the trigger to an instant in loc.
func (c CalendarTrigger) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, 0, 0, loc)
}

// Request is one pending reminder, keyed by ID.
type Request struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Sound   bool            `json:"sound"`
	Trigger CalendarTrigger `json:"trigger"`
	Repeats bool            `json:"repeats"`
}

// Status is the notification permission state.
type Status string

const (
	StatusNotDetermined Status = "not_determined"
	StatusDenied        Status = "denied"
	StatusAuthorized    Status = "authorized"
)

// Center is the host notification subsystem the Scheduler talks to.
type Center interface {
	// Add registers or replaces the pending request with the same ID.
	Add(req Request) error
	// RemovePending drops pending requests; unknown IDs are ignored.
	RemovePending(ids ...string)
	Pending() ([]Request, error)
	AuthorizationStatus() Status
	// RequestAuthorization asks the user and records the answer.
	RequestAuthorization(ctx context.Context) (bool, error)
}
