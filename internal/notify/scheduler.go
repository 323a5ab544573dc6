// Package notify turns item due dates into one-shot reminders.
//
// The Scheduler is constructed once per process and handed to whoever
// mutates items. It never returns errors: a missing authorization or a
// failing Center is logged and the request is dropped.
package notify

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/model"
)

// ReminderTitle is the fixed title of every reminder.
const ReminderTitle = "To-do reminder"

// Options configures NewScheduler.
type Options struct {
	// Location interprets due dates as calendar components. Defaults to time.Local.
	Location *time.Location
	Logger   *log.Logger
}

// Scheduler keeps a Center in sync with items' due dates.
type Scheduler struct {
	center     Center
	loc        *time.Location
	log        *log.Logger
	authorized atomic.Bool
}

// NewScheduler reads the current authorization status before returning.
func NewScheduler(center Center, opts Options) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		center: center,
		loc:    loc,
		log:    logging.OrDefault(opts.Logger),
	}
	s.RefreshAuthorization()
	return s
}

// Authorized reports the last known authorization state.
func (s *Scheduler) Authorized() bool { return s.authorized.Load() }

// RefreshAuthorization re-reads the status from the Center.
func (s *Scheduler) RefreshAuthorization() {
	s.authorized.Store(s.center.AuthorizationStatus() == StatusAuthorized)
}

// RequestAuthorization prompts through the Center and refreshes the state.
func (s *Scheduler) RequestAuthorization(ctx context.Context) bool {
	granted, err := s.center.RequestAuthorization(ctx)
	if err != nil {
		s.log.Error("request notification authorization", "err", err)
	}
	s.RefreshAuthorization()
	return granted && s.Authorized()
}

// Schedule registers a reminder for it at its due date's minute.
// Items without a due date are ignored.
func (s *Scheduler) Schedule(it model.Item) {
	if it.DueDate == nil {
		return
	}
	if !s.Authorized() {
		s.log.Warn("notifications not authorized; reminder skipped", "id", it.ID, "title", it.Title)
		return
	}
	req := Request{
		ID:      it.ID.String(),
		Title:   ReminderTitle,
		Body:    it.Title,
		Sound:   true,
		Trigger: TriggerAt(*it.DueDate, s.loc),
	}
	if err := s.center.Add(req); err != nil {
		s.log.Error("schedule reminder", "id", req.ID, "err", err)
		return
	}
	s.log.Debug("reminder scheduled", "id", req.ID, "at", req.Trigger.Time(s.loc))
}

// Cancel drops any pending reminder for it.
func (s *Scheduler) Cancel(it model.Item) {
	s.center.RemovePending(it.ID.String())
}

// Resync cancels, then reschedules unless the item is completed.
func (s *Scheduler) Resync(it model.Item) {
	s.Cancel(it)
	if !it.IsCompleted {
		s.Schedule(it)
	}
}
