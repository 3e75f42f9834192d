package driven

// ConfigStore is the key/value store behind the settings service.
// Keys use dot notation ("search.min_length"). Getters return the zero
// value when a key is missing or holds another type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value. File-backed stores persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path locates the backing file, or names the store if it has none.
	Path() string
}
