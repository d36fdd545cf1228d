package repository

import "context"

// SettingsRepository defines the key-value settings store used for global
// settings and per-flight notification throttle blobs
type SettingsRepository interface {
	Get(ctx context.Context, key string, defaultValue string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
