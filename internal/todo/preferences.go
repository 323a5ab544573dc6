package todo

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// BackgroundColor is the selected main background swatch.
func (s *Store) BackgroundColor() model.Swatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bg
}

// CardColor is the selected card background swatch.
func (s *Store) CardColor() model.Swatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card
}

// SetBackgroundColor selects a BackgroundPalette entry by name.
func (s *Store) SetBackgroundColor(name string) error {
	return s.setSwatch(KeyBackgroundColor, model.BackgroundPalette, name, &s.bg)
}

// SetCardColor selects a CardPalette entry by name.
func (s *Store) SetCardColor(name string) error {
	return s.setSwatch(KeyCardColor, model.CardPalette, name, &s.card)
}

func (s *Store) setSwatch(key string, palette []model.Swatch, name string, dst *model.Swatch) error {
	sw, ok := model.LookupSwatch(palette, name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSwatch, name)
	}
	s.mu.Lock()
	*dst = sw
	if err := s.local.SetString(key, sw.Name); err != nil {
		s.log.Error("save colour", "key", key, "err", err)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventPreferences})
	return nil
}

// loadSwatch falls back to the first palette entry for a missing or
// unknown name.
func (s *Store) loadSwatch(key string, palette []model.Swatch) model.Swatch {
	name, err := s.local.String(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("load colour", "key", key, "err", err)
		}
		return palette[0]
	}
	if sw, ok := model.LookupSwatch(palette, name); ok {
		return sw
	}
	return palette[0]
}
