package dataflows

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheManager is a small JSON file cache for fetched market data.
// Entries expire after a TTL; a disabled cache is a no-op.
type CacheManager struct {
	dir     string
	ttl     time.Duration
	enabled bool
}

func NewCacheManager(dir string, ttl time.Duration, enabled bool) *CacheManager {
	return &CacheManager{dir: dir, ttl: ttl, enabled: enabled}
}

type cacheEntry struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

func (cm *CacheManager) keyPath(namespace, operation string, key any) string {
	raw, _ := json.Marshal(key)
	sum := sha1.Sum(append([]byte(namespace+"/"+operation+"/"), raw...))
	return filepath.Join(cm.dir, namespace, operation+"_"+hex.EncodeToString(sum[:])+".json")
}

// Get loads a cached value into out. Returns false on miss, expiry,
// or any read error.
func (cm *CacheManager) Get(namespace, operation string, key any, out any) bool {
	if !cm.enabled {
		return false
	}
	data, err := os.ReadFile(cm.keyPath(namespace, operation, key))
	if err != nil {
		return false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false
	}
	if time.Since(entry.StoredAt) > cm.ttl {
		return false
	}
	return json.Unmarshal(entry.Payload, out) == nil
}

// Set stores a value. Write errors are swallowed; the cache is best
// effort only.
func (cm *CacheManager) Set(namespace, operation string, key any, value any) {
	if !cm.enabled {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	entry := cacheEntry{StoredAt: time.Now(), Payload: payload}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	path := cm.keyPath(namespace, operation, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// RetryConfig controls WithRetry.
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
	Backoff  float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{Attempts: 3, Delay: 500 * time.Millisecond, Backoff: 2.0}
}

// WithRetry runs fn up to Attempts times with exponential backoff.
func WithRetry(cfg RetryConfig, fn func() error) error {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	delay := cfg.Delay
	var lastErr error
	for i := 0; i < cfg.Attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if i < cfg.Attempts-1 {
			time.Sleep(delay)
			delay = time.Duration(float64(delay) * cfg.Backoff)
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", cfg.Attempts, lastErr)
}
