// Package theme owns the light/dark preference: a single reactive cell,
// mirrored into persistent storage and into the presentation layer on every
// change.
package theme

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/devfinder/internal/apperror"
	"github.com/sakif/devfinder/internal/state"
)

// Theme is the binary preference value.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"

	// Default is the compiled-in fallback when neither storage nor the
	// ambient preference yields a value.
	Default = Dark

	// StorageKey is the single key the preference occupies in the
	// settings store.
	StorageKey = "theme"
)

// Valid reports whether t is exactly one of the two literal values.
// Anything else read from storage is treated as absent.
func (t Theme) Valid() bool {
	return t == Dark || t == Light
}

// complement flips dark↔light.
func (t Theme) complement() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// MarkerClass returns the presentation marker for t ("theme-dark" or
// "theme-light"). The two markers are mutually exclusive by construction —
// the Applier always replaces one with the other, never accumulates both.
func (t Theme) MarkerClass() string {
	return "theme-" + string(t)
}

// Store persists the single preference value. The sqlite settings
// repository implements it; Get returns apperror.ErrNotFound when the key
// has never been written.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Applier pushes the preference into the presentation layer — the Go
// equivalent of toggling a class on the document root. Apply is called
// synchronously after every cell swap, construction included.
type Applier interface {
	Apply(t Theme)
}

// AmbientPreference is the platform's ambient color-scheme hint, consulted
// when storage has no (valid) value. Return ok=false when no hint exists.
type AmbientPreference func() (t Theme, ok bool)

// Service owns the preference cell and its side effects.
type Service struct {
	cell   *state.Cell[Theme]
	store  Store
	logger *slog.Logger
}

// New resolves the initial value and constructs the Service.
//
// RESOLUTION ORDER:
//  1. persisted value, accepted only if it is exactly "dark" or "light"
//  2. the ambient preference hint, if one exists
//  3. the compiled-in default
//
// The resolved value runs the full post-commit sync once at construction,
// so the applier and the store are in step with the cell from the first
// moment — even when the value came out of the store itself.
func New(ctx context.Context, store Store, applier Applier, ambient AmbientPreference, logger *slog.Logger) *Service {
	initial := Default

	stored, err := store.Get(ctx, StorageKey)
	switch {
	case err == nil && Theme(stored).Valid():
		initial = Theme(stored)
	default:
		// Storage read failures are logged and swallowed — the in-memory
		// value is never affected by a broken store. An absent key is not
		// a failure, just a first run.
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			logger.Warn("failed to read persisted theme", slog.String("error", err.Error()))
		}
		if ambient != nil {
			if hint, ok := ambient(); ok && hint.Valid() {
				initial = hint
			}
		}
	}

	s := &Service{
		cell:   state.NewCell(initial),
		store:  store,
		logger: logger,
	}

	// Post-commit hook: every swap synchronously applies the presentation
	// marker and best-effort persists. Subscribed before the construction
	// Set so the initial value gets the same treatment as later changes.
	s.cell.Subscribe(func(t Theme) {
		applier.Apply(t)
		s.persist(t)
	})
	s.cell.Set(initial)

	return s
}

// Toggle flips the current value to its complement.
func (s *Service) Toggle() {
	s.cell.Set(s.cell.Get().complement())
}

// Set sets the value unconditionally. Setting the current value again is a
// no-op for observers of the value itself but still re-runs the side
// effects, persistence included.
func (s *Service) Set(t Theme) {
	s.cell.Set(t)
}

// Current returns the raw current value.
func (s *Service) Current() Theme { return s.cell.Get() }

// IsDark reports whether the current value is dark.
func (s *Service) IsDark() bool { return s.cell.Get() == Dark }

// IsLight reports whether the current value is light.
func (s *Service) IsLight() bool { return s.cell.Get() == Light }

// Subscribe registers a subscriber for value swaps and returns its
// unsubscribe function.
func (s *Service) Subscribe(sub state.Subscriber[Theme]) func() {
	return s.cell.Subscribe(sub)
}

// persist writes the value to the store. Failures are logged, never
// propagated — a broken store must not break theming.
func (s *Service) persist(t Theme) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.store.Set(ctx, StorageKey, string(t)); err != nil {
		s.logger.Warn("failed to persist theme",
			slog.String("theme", string(t)),
			slog.String("error", err.Error()),
		)
	}
}
