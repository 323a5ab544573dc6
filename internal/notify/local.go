package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/store"
)

const pendingPrefix = "reminder."

// Prompt asks the user whether reminders may be shown.
type Prompt func(ctx context.Context) (bool, error)

// LocalCenter is a Center kept in a store.Store, one entry per pending
// request. Backed by SQLite it can be shared by the CLI and a watcher.
type LocalCenter struct {
	pending   store.Store
	grantPath string
	prompt    Prompt
	loc       *time.Location
	log       *log.Logger
}

var _ Center = (*LocalCenter)(nil)

// LocalOptions configures NewLocalCenter.
type LocalOptions struct {
	// GrantPath is the authorization record file.
	GrantPath string
	Prompt    Prompt
	Location  *time.Location
	Logger    *log.Logger
}

func NewLocalCenter(pending store.Store, opts LocalOptions) *LocalCenter {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &LocalCenter{
		pending:   pending,
		grantPath: opts.GrantPath,
		prompt:    opts.Prompt,
		loc:       loc,
		log:       logging.OrDefault(opts.Logger),
	}
}

func (c *LocalCenter) Add(req Request) error {
	if req.ID == "" {
		return errors.New("request id is empty")
	}
	b, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.pending.SetData(pendingPrefix+req.ID, b)
}

func (c *LocalCenter) RemovePending(ids ...string) {
	for _, id := range ids {
		if err := c.pending.Remove(pendingPrefix + id); err != nil {
			c.log.Error("remove pending reminder", "id", id, "err", err)
		}
	}
}

// Pending returns the pending requests ordered by fire time.
// Undecodable entries are skipped.
func (c *LocalCenter) Pending() ([]Request, error) {
	keys, err := c.pending.Keys(pendingPrefix)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	reqs := make([]Request, 0, len(keys))
	for _, k := range keys {
		b, err := c.pending.Data(k)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		var r Request
		if err := json.Unmarshal(b, &r); err != nil {
			c.log.Warn("skip undecodable reminder", "key", k, "err", err)
			continue
		}
		reqs = append(reqs, r)
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].Trigger.Time(c.loc).Before(reqs[j].Trigger.Time(c.loc))
	})
	return reqs, nil
}

func (c *LocalCenter) AuthorizationStatus() Status {
	if c.grantPath == "" {
		return StatusNotDetermined
	}
	g, err := ReadGrant(c.grantPath)
	if err != nil {
		c.log.Warn("read notification grant", "err", err)
	}
	return g.Status
}

func (c *LocalCenter) RequestAuthorization(ctx context.Context) (bool, error) {
	if c.prompt == nil {
		return false, errors.New("no authorization prompt configured")
	}
	if c.grantPath == "" {
		return false, errors.New("no grant path configured")
	}
	granted, err := c.prompt(ctx)
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	g := Grant{Status: StatusDenied, DecidedAt: time.Now().UTC()}
	if granted {
		g.Status = StatusAuthorized
	}
	if err := WriteGrant(c.grantPath, g); err != nil {
		return granted, err
	}
	return granted, nil
}

// DeliverDue removes and returns every request whose trigger is at or
// before now.
func (c *LocalCenter) DeliverDue(now time.Time) ([]Request, error) {
	reqs, err := c.Pending()
	if err != nil {
		return nil, err
	}
	var due []Request
	for _, r := range reqs {
		if r.Trigger.Time(c.loc).After(now) {
			break
		}
		if err := c.pending.Remove(pendingPrefix + r.ID); err != nil {
			return due, fmt.Errorf("remove delivered reminder: %w", err)
		}
		due = append(due, r)
	}
	return due, nil
}

// Run polls every interval and hands due requests to deliver until ctx is
// done. Delivery errors are logged and polling continues.
func (c *LocalCenter) Run(ctx context.Context, every time.Duration, deliver func(Request)) error {
	if every <= 0 {
		every = 30 * time.Second
	}
	tick := time.NewTicker(every)
	defer tick.Stop()

	for {
		due, err := c.DeliverDue(time.Now())
		if err != nil {
			c.log.Error("deliver reminders", "err", err)
		}
		for _, r := range due {
			deliver(r)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}
