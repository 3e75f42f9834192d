package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/ports/driven"
	"github.com/custodia-labs/lookup/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIURL         = "api.url"
	keyRateLimit      = "api.rate_limit"
	keyCategory       = "search.category"
	keyMinLength      = "search.min_length"
	keyDebounceMs     = "search.debounce_ms"
	keyRequestTimeout = "search.request_timeout_ms"
	keyLogFile        = "log.file"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		APIURL:          s.getString(keyAPIURL, defaults.APIURL),
		Category:        s.configStore.GetString(keyCategory),
		MinSearchLength: s.getPositiveInt(keyMinLength, defaults.MinSearchLength),
		DebounceDelay:   s.getMillis(keyDebounceMs, defaults.DebounceDelay),
		RequestTimeout:  s.getMillis(keyRequestTimeout, defaults.RequestTimeout),
		RateLimit:       s.getFloat(keyRateLimit, defaults.RateLimit),
		LogFile:         s.configStore.GetString(keyLogFile),
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyAPIURL, settings.APIURL},
		{keyCategory, settings.Category},
		{keyMinLength, settings.MinSearchLength},
		{keyDebounceMs, settings.DebounceDelay.Milliseconds()},
		{keyRequestTimeout, settings.RequestTimeout.Milliseconds()},
		{keyRateLimit, settings.RateLimit},
		{keyLogFile, settings.LogFile},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	ms := s.configStore.GetInt(key)
	if ms < 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		if v >= 0 {
			return v
		}
	case int64:
		if v >= 0 {
			return float64(v)
		}
	case int:
		if v >= 0 {
			return float64(v)
		}
	}
	return defaultVal
}
