package cache

import (
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k := Key("discover", "Lisbon, Portugal", 4.5, 500)
	want := "discover|Lisbon, Portugal|4.5|500"
	if k != want {
		t.Errorf("Key() = %q, want %q", k, want)
	}
	if Key("a", "b") == Key("a", "c") {
		t.Errorf("distinct tuples must yield distinct keys")
	}
}

func TestMemoryPutGet(t *testing.T) {
	m := NewMemory()
	m.Put("k", []int{1, 2, 3}, time.Minute)

	v, ok := m.Get("k")
	if !ok {
		t.Fatalf("Get() miss, want hit")
	}
	if got := v.([]int); len(got) != 3 {
		t.Errorf("Get() = %v, want [1 2 3]", got)
	}

	if _, ok := m.Get("absent"); ok {
		t.Errorf("Get(absent) hit, want miss")
	}
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Now()
	m := NewMemory()
	m.now = func() time.Time { return now }

	m.Put("k", "v", time.Hour)
	if _, ok := m.Get("k"); !ok {
		t.Fatalf("entry expired before its TTL")
	}

	now = now.Add(2 * time.Hour)
	if _, ok := m.Get("k"); ok {
		t.Errorf("entry survived past its TTL")
	}

	// Expired entry was evicted; a fresh Put must work again.
	m.Put("k", "v2", time.Hour)
	if v, ok := m.Get("k"); !ok || v != "v2" {
		t.Errorf("refreshed entry not readable, got %v %v", v, ok)
	}
}
