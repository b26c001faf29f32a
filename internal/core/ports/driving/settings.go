package driving

import (
	"context"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings.
	Get(ctx context.Context) (domain.AppSettings, error)

	// Update persists the given settings.
	Update(ctx context.Context, settings domain.AppSettings) error

	// SetValue persists a single dot-notation settings key.
	SetValue(ctx context.Context, key, value string) error
}
