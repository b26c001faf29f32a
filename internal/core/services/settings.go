package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clipseek/clipseek-cli/internal/core/domain"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driven"
	"github.com/clipseek/clipseek-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Settings keys in the config store.
const (
	keyRetrievalEndpoint   = "retrieval.endpoint"
	keyRetrievalIndexName  = "retrieval.index_name"
	keyRetrievalAPIVersion = "retrieval.api_version"
	keyRetrievalAPIKey     = "retrieval.api_key"
	keyStorageAccountName  = "storage.account_name"
	keyStorageContainer    = "storage.container_name"
	keyStorageAccountKey   = "storage.account_key"
	keyStorageSASValidity  = "storage.sas_validity"
)

// SettingsService loads and persists application settings through the
// config store.
type SettingsService struct {
	config driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(config driven.ConfigStore) *SettingsService {
	return &SettingsService{config: config}
}

// Get returns the stored settings layered over the defaults.
func (s *SettingsService) Get(_ context.Context) (domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.config == nil {
		return settings, nil
	}

	if v := s.config.GetString(keyRetrievalEndpoint); v != "" {
		settings.Retrieval.Endpoint = v
	}
	if v := s.config.GetString(keyRetrievalIndexName); v != "" {
		settings.Retrieval.IndexName = v
	}
	if v := s.config.GetString(keyRetrievalAPIVersion); v != "" {
		settings.Retrieval.APIVersion = v
	}
	if v := s.config.GetString(keyRetrievalAPIKey); v != "" {
		settings.Retrieval.APIKey = v
	}
	if v := s.config.GetString(keyStorageAccountName); v != "" {
		settings.Storage.AccountName = v
	}
	if v := s.config.GetString(keyStorageContainer); v != "" {
		settings.Storage.ContainerName = v
	}
	if v := s.config.GetString(keyStorageAccountKey); v != "" {
		settings.Storage.AccountKey = v
	}
	if v := s.config.GetString(keyStorageSASValidity); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			settings.Storage.SASValidity = d
		}
	}

	return settings, nil
}

// Update persists the given settings.
func (s *SettingsService) Update(_ context.Context, settings domain.AppSettings) error {
	if s.config == nil {
		return domain.ErrNotImplemented
	}

	values := map[string]any{
		keyRetrievalEndpoint:   settings.Retrieval.Endpoint,
		keyRetrievalIndexName:  settings.Retrieval.IndexName,
		keyRetrievalAPIVersion: settings.Retrieval.APIVersion,
		keyRetrievalAPIKey:     settings.Retrieval.APIKey,
		keyStorageAccountName:  settings.Storage.AccountName,
		keyStorageContainer:    settings.Storage.ContainerName,
		keyStorageAccountKey:   settings.Storage.AccountKey,
		keyStorageSASValidity:  settings.Storage.SASValidity.String(),
	}

	for key, value := range values {
		if err := s.config.Set(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// SetValue persists a single dot-notation settings key. Only known
// keys are accepted.
func (s *SettingsService) SetValue(_ context.Context, key, value string) error {
	if s.config == nil {
		return domain.ErrNotImplemented
	}

	switch key {
	case keyRetrievalEndpoint, keyRetrievalIndexName, keyRetrievalAPIVersion,
		keyRetrievalAPIKey, keyStorageAccountName, keyStorageContainer,
		keyStorageAccountKey:
		return s.config.Set(key, value)
	case keyStorageSASValidity:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, domain.ErrInvalidInput)
		}
		return s.config.Set(key, value)
	default:
		return fmt.Errorf("unknown settings key %q: %w", key, domain.ErrInvalidInput)
	}
}

// SettingsKeys returns every key accepted by SetValue.
func SettingsKeys() []string {
	return []string{
		keyRetrievalEndpoint,
		keyRetrievalIndexName,
		keyRetrievalAPIVersion,
		keyRetrievalAPIKey,
		keyStorageAccountName,
		keyStorageContainer,
		keyStorageAccountKey,
		keyStorageSASValidity,
	}
}
