// Package repository defines the storage interfaces the rest of the app
// programs against. Concrete implementations live in subpackages (sqlite).
package repository

import "context"

// SettingsRepository is a small string key-value store for user settings.
// Today it holds exactly one key (the theme preference) — the server-side
// stand-in for what a browser keeps in localStorage.
//
// Get returns apperror.ErrNotFound for a key that has never been written.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
