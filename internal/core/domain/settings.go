package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default lookup settings.
const (
	DefaultAPIURL          = "http://localhost:8080/api"
	DefaultMinSearchLength = 3
	DefaultDebounceDelay   = 300 * time.Millisecond
	DefaultCacheTTL        = time.Hour
)

// Settings holds the configuration surface of the lookup widget.
type Settings struct {
	// APIURL is the base URL of the remote search source.
	APIURL string

	// Category is the initial category. Empty means the catalog default.
	Category string

	// MinSearchLength is the minimum query length that triggers a search.
	MinSearchLength int

	// DebounceDelay is how long input must be stable before searching.
	DebounceDelay time.Duration

	// RequestTimeout bounds each remote request. Zero means no timeout.
	RequestTimeout time.Duration

	// RateLimit is the maximum remote requests per second. Zero disables limiting.
	RateLimit float64

	// LogFile receives verbose logs while the TUI owns the terminal.
	LogFile string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		APIURL:          DefaultAPIURL,
		MinSearchLength: DefaultMinSearchLength,
		DebounceDelay:   DefaultDebounceDelay,
	}
}

// Validate checks the settings for values the widget cannot work with.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.APIURL) == "" {
		return fmt.Errorf("%w: api url is required", ErrInvalidInput)
	}
	if s.MinSearchLength < 1 {
		return fmt.Errorf("%w: minimum search length must be at least 1", ErrInvalidInput)
	}
	if s.DebounceDelay < 0 {
		return fmt.Errorf("%w: debounce delay must not be negative", ErrInvalidInput)
	}
	if s.RequestTimeout < 0 {
		return fmt.Errorf("%w: request timeout must not be negative", ErrInvalidInput)
	}
	if s.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidInput)
	}
	return nil
}
