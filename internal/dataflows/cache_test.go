package dataflows

import (
	"testing"
	"time"
)

type cachedThing struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestCacheRoundTrip(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)

	in := cachedThing{Name: "AAPL", Value: 42}
	cm.Set("test", "thing", "key", in)

	var out cachedThing
	if !cm.Get("test", "thing", "key", &out) {
		t.Fatal("expected cache hit")
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestCacheMissOnDifferentKey(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, true)
	cm.Set("test", "thing", "key", cachedThing{Name: "AAPL"})

	var out cachedThing
	if cm.Get("test", "thing", "other-key", &out) {
		t.Fatal("expected cache miss for different key")
	}
}

func TestCacheExpires(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Nanosecond, true)
	cm.Set("test", "thing", "key", cachedThing{Name: "AAPL"})

	time.Sleep(time.Millisecond)

	var out cachedThing
	if cm.Get("test", "thing", "key", &out) {
		t.Fatal("expected expired entry to miss")
	}
}

func TestCacheDisabled(t *testing.T) {
	cm := NewCacheManager(t.TempDir(), time.Hour, false)
	cm.Set("test", "thing", "key", cachedThing{Name: "AAPL"})

	var out cachedThing
	if cm.Get("test", "thing", "key", &out) {
		t.Fatal("disabled cache must always miss")
	}
}

func TestWithRetryStopsAfterSuccess(t *testing.T) {
	attempts := 0
	err := WithRetry(RetryConfig{Attempts: 5, Delay: time.Millisecond, Backoff: 1}, func() error {
		attempts++
		if attempts < 3 {
			return errTest
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }
