package httpserver

import (
	"sync"
	"testing"
	"time"
)

func TestBroadcasterRegisterUnregister(t *testing.T) {
	b := NewBroadcaster()

	c1 := b.Register("s1")
	c2 := b.Register("s1")
	c3 := b.Register("s2")

	if b.ClientCount("s1") != 2 || b.ClientCount("s2") != 1 {
		t.Fatalf("counts = %d %d", b.ClientCount("s1"), b.ClientCount("s2"))
	}
	b.Unregister(c1)
	b.Unregister(c1) // second call is a no-op
	b.Unregister(c2)
	b.Unregister(c3)
	if b.ClientCount("s1") != 0 || b.ClientCount("s2") != 0 {
		t.Fatal("expected 0 clients after full unregister")
	}
}

func TestBroadcastTargetsSession(t *testing.T) {
	b := NewBroadcaster()
	c1 := b.Register("s1")
	c2 := b.Register("s2")
	defer b.Unregister(c1)
	defer b.Unregister(c2)

	b.Broadcast("s1", "hello")

	select {
	case msg := <-c1.ch:
		if msg != "hello" {
			t.Fatalf("got %q", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("c1 did not receive message")
	}
	select {
	case <-c2.ch:
		t.Fatal("c2 should not receive s1 messages")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastSkipsSlowClient(t *testing.T) {
	b := NewBroadcaster()
	c := b.Register("s1")
	defer b.Unregister(c)

	for range sseChannelBuffer + 5 {
		b.Broadcast("s1", "x")
	}
	if len(c.ch) != sseChannelBuffer {
		t.Fatalf("buffered %d messages", len(c.ch))
	}
}

func TestBroadcasterConcurrent(t *testing.T) {
	b := NewBroadcaster()
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := b.Register("s1")
			b.Broadcast("s1", "ping")
			b.Unregister(c)
		}()
	}
	wg.Wait()
	if b.ClientCount("s1") != 0 {
		t.Fatal("clients leaked")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should pass")
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("third request should be limited")
	}
	if !rl.allow("5.6.7.8") {
		t.Fatal("other ip should have its own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.allow("1.2.3.4") {
		t.Fatal("bucket should refill after the interval")
	}

	now = now.Add(10 * time.Minute)
	rl.allow("9.9.9.9") // prunes stale buckets
	rl.mu.Lock()
	_, kept := rl.visitors["5.6.7.8"]
	rl.mu.Unlock()
	if kept {
		t.Fatal("stale bucket not pruned")
	}
}
