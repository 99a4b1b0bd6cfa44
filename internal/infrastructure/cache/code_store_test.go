package cache

import (
	"testing"
	"time"
)

func TestConsumeValidCode(t *testing.T) {
	store := NewCodeStore(time.Minute)
	store.Put("a@example.com", "12345678")

	if !store.Consume("a@example.com", "12345678") {
		t.Fatal("valid code must be consumable")
	}
	if store.Consume("a@example.com", "12345678") {
		t.Fatal("codes are single-use")
	}
}

func TestConsumeWrongCode(t *testing.T) {
	store := NewCodeStore(time.Minute)
	store.Put("a@example.com", "12345678")

	if store.Consume("a@example.com", "87654321") {
		t.Fatal("wrong code must be rejected")
	}
	// A wrong guess must not burn the real code.
	if !store.Consume("a@example.com", "12345678") {
		t.Fatal("real code must still work")
	}
}

func TestExpiredCodeRejected(t *testing.T) {
	store := NewCodeStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	store.Put("a@example.com", "12345678")

	now = now.Add(2 * time.Minute)
	if store.Consume("a@example.com", "12345678") {
		t.Fatal("expired code must be rejected")
	}
}

func TestReRequestOverwrites(t *testing.T) {
	store := NewCodeStore(time.Minute)
	store.Put("a@example.com", "first")
	store.Put("a@example.com", "second")

	if store.Consume("a@example.com", "first") {
		t.Fatal("superseded code must be invalid")
	}
	if !store.Consume("a@example.com", "second") {
		t.Fatal("latest code must be valid")
	}
}

func TestPutDropsExpiredEntries(t *testing.T) {
	store := NewCodeStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	store.Put("stale@example.com", "old")
	now = now.Add(2 * time.Minute)
	store.Put("fresh@example.com", "new")

	store.mu.Lock()
	_, staleKept := store.codes["stale@example.com"]
	store.mu.Unlock()

	if staleKept {
		t.Error("inserting a code must drop entries that have expired")
	}
	if !store.Consume("fresh@example.com", "new") {
		t.Error("fresh code must be unaffected")
	}
}

func TestSweepDropsExpired(t *testing.T) {
	store := NewCodeStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	store.Put("a@example.com", "old")
	now = now.Add(2 * time.Minute)
	store.Put("b@example.com", "fresh")

	store.Sweep()

	store.mu.Lock()
	_, oldKept := store.codes["a@example.com"]
	_, freshKept := store.codes["b@example.com"]
	store.mu.Unlock()

	if oldKept {
		t.Error("expired entry must be swept")
	}
	if !freshKept {
		t.Error("live entry must survive the sweep")
	}
}
