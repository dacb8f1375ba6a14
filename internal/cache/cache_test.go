package cache

import (
	"testing"
	"time"
)

func TestReportKey_Deterministic(t *testing.T) {
	a := ReportKey([]string{"cough", "fever"}, 3)
	b := ReportKey([]string{"cough", "fever"}, 3)
	if a != b {
		t.Error("Expected identical keys for identical requests")
	}
	if a == ReportKey([]string{"cough", "fever"}, 5) {
		t.Error("Expected days to change the key")
	}
	if a == ReportKey([]string{"fever", "cough"}, 3) {
		t.Error("Expected symptom order to change the key")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	key := ReportKey([]string{"headache"}, 3)
	if err := c.Set(key, []byte(`{"ok":true}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Drop the memory layer; the entry must come back from disk.
	c.memory.Clear()
	val, found := c.Get(key)
	if !found || string(val) != `{"ok":true}` {
		t.Fatalf("Expected disk hit, got found=%v val=%q", found, val)
	}

	// The disk hit promotes back into memory.
	if _, found := c.memory.Get(key); !found {
		t.Error("Expected promotion to memory layer")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected expired entry to miss")
	}
}
