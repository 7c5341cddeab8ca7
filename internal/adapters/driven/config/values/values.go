// Package values holds dotted configuration keys in a flat, lock-guarded map
// and converts between that form and nested TOML tables.
package values

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Map is a flat set of dotted keys such as "search.fuzzy.apps.enabled".
// The zero value is not usable; call New.
type Map struct {
	mu sync.RWMutex
	m  map[string]any
}

// New returns a Map seeded with a copy of flat.
func New(flat map[string]any) *Map {
	m := make(map[string]any, len(flat))
	maps.Copy(m, flat)
	return &Map{m: m}
}

// Get returns the raw value for key.
func (v *Map) Get(key string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.m[key]
	return val, ok
}

// GetString returns key as a string, or "" when missing or not a string.
func (v *Map) GetString(key string) string {
	val, _ := v.Get(key)
	s, _ := val.(string)
	return s
}

// GetInt returns key as an int. TOML decodes integers as int64 and some
// writers store whole floats; both convert. Anything else is 0.
func (v *Map) GetInt(key string) int {
	val, _ := v.Get(key)
	switch n := val.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return 0
}

// GetBool returns key as a bool, or false.
func (v *Map) GetBool(key string) bool {
	val, _ := v.Get(key)
	b, _ := val.(bool)
	return b
}

// GetStringSlice returns key as a string list. Decoded TOML arrays arrive as
// []any; non-string elements are skipped.
func (v *Map) GetStringSlice(key string) []string {
	val, _ := v.Get(key)
	switch list := val.(type) {
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

// Keys returns every key in sorted order.
func (v *Map) Keys() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Sorted(maps.Keys(v.m))
}

// Update runs fn with exclusive access to the underlying map.
func (v *Map) Update(fn func(m map[string]any) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fn(v.m)
}

// Flatten turns nested tables into dotted keys: {"a": {"b": 1}} becomes
// {"a.b": 1}.
func Flatten(nested map[string]any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, nested, "")
	return flat
}

func flattenInto(dst, src map[string]any, prefix string) {
	for k, val := range src {
		if prefix != "" {
			k = prefix + "." + k
		}
		if table, ok := val.(map[string]any); ok {
			flattenInto(dst, table, k)
			continue
		}
		dst[k] = val
	}
}

// Nest is the inverse of Flatten.
func Nest(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, val := range flat {
		path := strings.Split(key, ".")
		table := root
		for _, part := range path[:len(path)-1] {
			child, ok := table[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				table[part] = child
			}
			table = child
		}
		table[path[len(path)-1]] = val
	}
	return root
}

// Collides reports why key cannot be stored alongside the keys in m: it
// would turn an existing table into a value or nest inside an existing value.
// It returns "" when key fits.
func Collides(m map[string]any, key string) string {
	for existing := range m {
		if strings.HasPrefix(existing, key+".") {
			return "is a table"
		}
		if strings.HasPrefix(key, existing+".") {
			return "is inside value " + existing
		}
	}
	return ""
}
