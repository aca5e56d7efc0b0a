package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyFirstRequest(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, cached, err := store.CheckAndSet(ctx, "transfer-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if exists {
		t.Fatalf("expected first request to pass through, got cached %s", cached)
	}
}

func TestIdempotencyReplayReturnsResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	response := []byte(`{"id":"txn-1","amount":"300"}`)

	exists, _, err := store.CheckAndSet(ctx, "transfer-1", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("first check failed: exists=%v err=%v", exists, err)
	}

	if err := store.Update(ctx, "transfer-1", response, time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "transfer-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("replay check failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected replay to be detected")
	}
	if string(cached) != string(response) {
		t.Fatalf("expected cached response %s, got %s", response, cached)
	}
}

func TestIdempotencyPlaceholderBlocksConcurrent(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	// First request locks the key with a placeholder.
	exists, _, err := store.CheckAndSet(ctx, "transfer-1", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("first check failed: exists=%v err=%v", exists, err)
	}

	// A concurrent duplicate sees the placeholder, not a pass-through.
	exists, cached, err := store.CheckAndSet(ctx, "transfer-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("second check failed: %v", err)
	}
	if !exists {
		t.Fatalf("expected second request to be blocked")
	}
	if string(cached) != "processing" {
		t.Fatalf("expected placeholder, got %s", cached)
	}
}

func TestIdempotencyKeysExpire(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "transfer-1", []byte("done"), time.Minute); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	exists, _, err := store.CheckAndSet(ctx, "transfer-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("check after expiry failed: %v", err)
	}
	if exists {
		t.Fatalf("expected key to have expired")
	}
}
