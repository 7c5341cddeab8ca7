package driven

// ConfigStore holds user settings under dotted keys such as
// "search.result_limit". Typed getters return the zero value when a key is
// missing or holds another type; use Get to tell the two apart.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value under key. Persistent stores write through.
	Set(key string, value any) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
