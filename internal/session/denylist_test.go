package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/vaughan-dsouza/betasks/internal/models"
)

func newRedisDenylist(t *testing.T) (*RedisDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	d, err := NewRedisDenylist(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("new redis denylist: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, mr
}

func TestRedisDenylist(t *testing.T) {
	d, mr := newRedisDenylist(t)
	ctx := context.Background()

	if err := d.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if !mr.Exists(redisKeyPrefix + "jti-1") {
		t.Fatalf("expected key %q", redisKeyPrefix+"jti-1")
	}
	if ttl := mr.TTL(redisKeyPrefix + "jti-1"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	if ok, err := d.Revoked(ctx, "jti-1"); err != nil || !ok {
		t.Fatalf("expected jti-1 revoked, got %v %v", ok, err)
	}
	if ok, err := d.Revoked(ctx, "jti-2"); err != nil || ok {
		t.Fatalf("expected jti-2 not revoked, got %v %v", ok, err)
	}

	mr.FastForward(2 * time.Minute)
	if ok, err := d.Revoked(ctx, "jti-1"); err != nil || ok {
		t.Fatalf("entry should expire with the token, got %v %v", ok, err)
	}
}

func TestRedisDenylistSkipsExpiredTokens(t *testing.T) {
	d, mr := newRedisDenylist(t)
	ctx := context.Background()

	if err := d.Revoke(ctx, "old", time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if mr.Exists(redisKeyPrefix + "old") {
		t.Fatal("an already expired token should not be stored")
	}
}

func TestManagerRevokeThroughRedis(t *testing.T) {
	d, _ := newRedisDenylist(t)
	m, err := NewManager(Options{Secret: "redis-secret", Denylist: d})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tok, _, _ := m.Issue(models.User{ID: 9, Role: models.RoleUser})
	claims, err := m.Verify(ctx, tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := m.Revoke(ctx, claims); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := m.Verify(ctx, tok); err == nil {
		t.Fatal("revoked token should fail verification")
	}
}

func TestNewRedisDenylistBadURL(t *testing.T) {
	if _, err := NewRedisDenylist(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected error for invalid url")
	}
}
