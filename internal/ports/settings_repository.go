package ports

import "context"

// Port: a key/value store for deployment settings (home location, radius
// limits and other per-practice values).
type SettingsRepository interface {
	// GetSetting returns ErrNotFound when the key has never been written.
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}
