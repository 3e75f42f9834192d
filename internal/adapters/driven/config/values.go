// Package config holds the value coercions shared by the config stores.
// TOML decodes integers as int64 and arrays as []any, while values set in
// process keep their Go type; both forms are accepted.
package config

// String returns v if it is a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int. Non-numeric values yield 0.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Bool returns v if it is a bool.
func Bool(v any) bool {
	b, _ := v.(bool)
	return b
}

// Strings returns the string elements of v, or nil if v is not a list.
func Strings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
