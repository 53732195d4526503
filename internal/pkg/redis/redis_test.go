package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := Connect("redis://" + mr.Addr() + "/0")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestHitCountsWithinWindow(t *testing.T) {
	c, mr := newClient(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	for want := int64(1); want <= 3; want++ {
		got, err := c.Hit(ctx, "rl:test", time.Minute, now)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("hit = %d, want %d", got, want)
		}
	}

	keys := mr.Keys()
	if len(keys) != 1 {
		t.Fatalf("keys = %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 || ttl > time.Minute+time.Second {
		t.Fatalf("ttl = %v", ttl)
	}
}

func TestHitStartsFreshInNextWindow(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0).Truncate(time.Minute)

	if _, err := c.Hit(ctx, "rl:test", time.Minute, now); err != nil {
		t.Fatal(err)
	}
	got, err := c.Hit(ctx, "rl:test", time.Minute, now.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Fatalf("next window hit = %d, want 1", got)
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	if _, err := Connect("not-a-redis-url"); err == nil {
		t.Fatal("expected error")
	}
}

func TestClaimCompleteRelease(t *testing.T) {
	c, mr := newClient(t)
	ctx := context.Background()

	ok, _, err := c.Claim(ctx, "idem:a", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first claim = %v, %v", ok, err)
	}
	ok, state, err := c.Claim(ctx, "idem:a", time.Minute)
	if err != nil || ok || state != StateInFlight {
		t.Fatalf("second claim = %v %q %v", ok, state, err)
	}

	if err := c.Complete(ctx, "idem:a"); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL("idem:a"); ttl <= 0 {
		t.Fatalf("ttl lost after complete: %v", ttl)
	}
	if _, state, _ := c.Claim(ctx, "idem:a", time.Minute); state != StateDone {
		t.Fatalf("state = %q, want done", state)
	}

	if err := c.Release(ctx, "idem:a"); err != nil {
		t.Fatal(err)
	}
	if ok, _, _ := c.Claim(ctx, "idem:a", time.Minute); !ok {
		t.Fatal("claim after release failed")
	}
}
