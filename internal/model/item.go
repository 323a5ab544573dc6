package model

import (
	"time"

	"github.com/google/uuid"
)

// Item is the domain model for a todo entry.
// Timestamps are kept in UTC so an encoded collection decodes to an equal one.
type Item struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	ImageData   []byte     `json:"imageData,omitempty"`
	Tags        []string   `json:"tags"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Option customises a new Item.
type Option func(*Item)

// WithDueDate sets the due date.
func WithDueDate(t time.Time) Option {
	return func(it *Item) { it.DueDate = UTC(&t) }
}

// WithNotes sets the notes.
func WithNotes(s string) Option {
	return func(it *Item) { it.Notes = &s }
}

// WithImage attaches an image blob. Nil or empty data is ignored.
func WithImage(b []byte) Option {
	return func(it *Item) {
		if len(b) > 0 {
			it.ImageData = append([]byte(nil), b...)
		}
	}
}

// WithTags sets the tags in the given order.
func WithTags(tags ...string) Option {
	return func(it *Item) { it.Tags = append([]string{}, tags...) }
}

// WithPriority sets the priority.
func WithPriority(p Priority) Option {
	return func(it *Item) { it.Priority = p }
}

// NewItem builds an incomplete Item with a fresh ID and CreatedAt = now.
func NewItem(title string, now time.Time, opts ...Option) Item {
	it := Item{
		ID:        uuid.New(),
		Title:     title,
		Tags:      []string{},
		Priority:  PriorityMedium,
		CreatedAt: now.UTC(),
	}
	for _, o := range opts {
		o(&it)
	}
	return it
}

// HasTag reports whether any tag equals t.
func (it Item) HasTag(t string) bool {
	for _, tag := range it.Tags {
		if tag == t {
			return true
		}
	}
	return false
}

// NotesText returns the notes or "".
func (it Item) NotesText() string {
	if it.Notes == nil {
		return ""
	}
	return *it.Notes
}

// Clone returns a deep copy.
func (it Item) Clone() Item {
	out := it
	if it.DueDate != nil {
		d := *it.DueDate
		out.DueDate = &d
	}
	if it.Notes != nil {
		n := *it.Notes
		out.Notes = &n
	}
	if it.ImageData != nil {
		out.ImageData = append([]byte(nil), it.ImageData...)
	}
	out.Tags = append([]string{}, it.Tags...)
	return out
}

// UTC copies t normalised to UTC without a monotonic reading. Nil stays nil.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
