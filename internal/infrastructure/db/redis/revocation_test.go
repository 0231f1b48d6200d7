package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeCmdable records the commands RevocationStore issues. Unused methods
// come from the embedded nil interface and panic if called.
type fakeCmdable struct {
	redis.Cmdable

	keys   map[string]time.Duration
	failOn error
}

func (f *fakeCmdable) Set(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
	if f.failOn != nil {
		return redis.NewStatusResult("", f.failOn)
	}
	f.keys[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.failOn != nil {
		return redis.NewIntResult(0, f.failOn)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRevocationStore_RevokeThenCheck(t *testing.T) {
	fake := &fakeCmdable{keys: map[string]time.Duration{}}
	store := NewRevocationStore(fake)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if err := store.Revoke(context.Background(), "abc", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if ttl := fake.keys["revoked:abc"]; ttl != 2*time.Hour {
		t.Fatalf("expected ttl of remaining lifetime, got %v", ttl)
	}

	revoked, err := store.IsRevoked(context.Background(), "abc")
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v %v", revoked, err)
	}
	revoked, err = store.IsRevoked(context.Background(), "other")
	if err != nil || revoked {
		t.Fatalf("expected not revoked, got %v %v", revoked, err)
	}
}

func TestRevocationStore_ExpiredTokenGetsMinimumTTL(t *testing.T) {
	fake := &fakeCmdable{keys: map[string]time.Duration{}}
	store := NewRevocationStore(fake)

	if err := store.Revoke(context.Background(), "old", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if ttl := fake.keys["revoked:old"]; ttl != minRevocationTTL {
		t.Fatalf("expected %v, got %v", minRevocationTTL, ttl)
	}
}

func TestRevocationStore_ErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	store := NewRevocationStore(&fakeCmdable{keys: map[string]time.Duration{}, failOn: boom})

	if _, err := store.IsRevoked(context.Background(), "abc"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
	if err := store.Revoke(context.Background(), "abc", time.Now().Add(time.Hour)); !errors.Is(err, boom) {
		t.Fatalf("expected revoke error, got %v", err)
	}
}
