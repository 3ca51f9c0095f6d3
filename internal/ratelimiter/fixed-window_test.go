package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowUpToLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Allow("10.0.0.1"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	ok, retry := rl.Allow("10.0.0.1")
	if ok {
		t.Fatal("request over the limit should be denied")
	}
	if retry <= 0 || retry > time.Minute {
		t.Errorf("retry-after = %v", retry)
	}
}

func TestClientsAreIndependent(t *testing.T) {
	rl := NewFixedWindowLimiter(1, time.Minute)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first client's first request should be allowed")
	}
	if ok, _ := rl.Allow("10.0.0.2"); !ok {
		t.Error("a second client must have its own window")
	}
}

func TestWindowResets(t *testing.T) {
	rl := NewFixedWindowLimiter(1, 10*time.Millisecond)

	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := rl.Allow("10.0.0.1"); ok {
		t.Fatal("second request in the window should be denied")
	}

	time.Sleep(15 * time.Millisecond)
	if ok, _ := rl.Allow("10.0.0.1"); !ok {
		t.Error("request after the window expires should be allowed")
	}
}
