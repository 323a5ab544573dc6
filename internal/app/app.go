// Package app opens everything the main process needs from a Config.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/notify"
	"github.com/idilsaglam/todo/internal/store/jsonstore"
	"github.com/idilsaglam/todo/internal/store/sqlitestore"
	"github.com/idilsaglam/todo/internal/todo"
)

// Options are the process-level hooks Open cannot read from a Config.
type Options struct {
	// LogOutput defaults to stderr.
	LogOutput io.Writer
	// Prompt answers notification authorization requests.
	Prompt notify.Prompt
	// Location interprets due dates for reminders; defaults to time.Local.
	Location *time.Location
	Now      func() time.Time
}

// App is one running main process.
type App struct {
	Config    *config.Config
	Log       *log.Logger
	Center    *notify.LocalCenter
	Scheduler *notify.Scheduler
	Store     *todo.Store

	closers []io.Closer
}

// NewLogger builds the process logger from cfg.
func NewLogger(w io.Writer, cfg *config.Config) *log.Logger {
	opts := logging.DefaultOptions()
	opts.Level = cfg.Log.Level
	opts.Format = cfg.Log.Format
	opts.ReportTimestamp = cfg.Log.Timestamps
	return logging.New(w, opts)
}

// Open wires the local and shared locations, the reminder center, the
// scheduler and the Store. Close releases them.
func Open(cfg *config.Config, opts Options) (*App, error) {
	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", cfg.Locale, err)
	}

	a := &App{Config: cfg, Log: NewLogger(opts.LogOutput, cfg)}

	local, err := jsonstore.Open(cfg.LocalPath, jsonstore.WithLogger(a.Log.WithPrefix("tada/store")))
	if err != nil {
		return nil, fmt.Errorf("open local location: %w", err)
	}
	a.closers = append(a.closers, local)

	shared, err := sqlitestore.Open(cfg.SharedPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open shared location: %w", err)
	}
	a.closers = append(a.closers, shared)

	pending, err := sqlitestore.Open(cfg.RemindersPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open reminders: %w", err)
	}
	a.closers = append(a.closers, pending)

	a.Center = notify.NewLocalCenter(pending, notify.LocalOptions{
		GrantPath: cfg.AuthPath,
		Prompt:    opts.Prompt,
		Location:  opts.Location,
		Logger:    a.Log.WithPrefix("tada/notify"),
	})
	a.Scheduler = notify.NewScheduler(a.Center, notify.Options{
		Location: opts.Location,
		Logger:   a.Log.WithPrefix("tada/notify"),
	})
	a.Store = todo.New(todo.Options{
		Local:     local,
		Shared:    shared,
		Reminders: a.Scheduler,
		Logger:    a.Log.WithPrefix("tada/store"),
		Locale:    locale,
		Now:       opts.Now,
	})
	a.Log.Debug("opened", "local", cfg.LocalPath, "shared", cfg.SharedPath, "items", a.Store.Len())
	return a, nil
}

// Close releases every location in reverse opening order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
