package settings

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// Site setting keys and defaults.
const (
	// SiteNameKey is the setting key for the public site name.
	SiteNameKey = "SITE_NAME"
	// DefaultSiteName is the fallback public site name.
	DefaultSiteName = "Flipr Studio"
)

// snapshot holds the in-memory site settings values.
type snapshot struct {
	updatedAt time.Time
	values    map[string]json.RawMessage
}

// globalSnapshot stores the latest snapshot atomically.
var globalSnapshot atomic.Value // stores snapshot

// init seeds the global settings snapshot.
func init() {
	globalSnapshot.Store(snapshot{values: map[string]json.RawMessage{}})
}

// Store replaces the in-memory snapshot of site settings.
func Store(updatedAt time.Time, values map[string]json.RawMessage) {
	next := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if v == nil {
			next[key] = nil
			continue
		}
		copied := make([]byte, len(v))
		copy(copied, v)
		next[key] = copied
	}

	globalSnapshot.Store(snapshot{
		updatedAt: updatedAt.UTC(),
		values:    next,
	})
}

// UpdatedAt returns the last update timestamp for the snapshot.
func UpdatedAt() time.Time {
	return load().updatedAt
}

// Value returns a copy of the raw setting value for a key.
func Value(key string) (json.RawMessage, bool) {
	cfg := load()
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	val, ok := cfg.values[key]
	if !ok {
		return nil, false
	}
	if val == nil {
		return nil, true
	}
	copied := make([]byte, len(val))
	copy(copied, val)
	return copied, true
}

// All returns a copy of every setting value keyed by name.
func All() map[string]json.RawMessage {
	cfg := load()
	out := make(map[string]json.RawMessage, len(cfg.values))
	for k, v := range cfg.values {
		if v == nil {
			out[k] = nil
			continue
		}
		copied := make([]byte, len(v))
		copy(copied, v)
		out[k] = copied
	}
	return out
}

// load returns the current snapshot with safe defaults.
func load() snapshot {
	v := globalSnapshot.Load()
	cfg, ok := v.(snapshot)
	if !ok {
		return snapshot{values: map[string]json.RawMessage{}}
	}
	if cfg.values == nil {
		return snapshot{updatedAt: cfg.updatedAt, values: map[string]json.RawMessage{}}
	}
	return cfg
}
