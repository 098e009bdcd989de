package cache

import (
	"context"
	"testing"
	"time"
)

func TestPublicProfileKey(t *testing.T) {
	if got := PublicProfileKey("  Dra-Perez "); got != "profile:public:dra-perez" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRedis_UnavailableIsNoop(t *testing.T) {
	r := NewWithClient(nil, nil, 0)
	ctx := context.Background()

	var out map[string]string
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("expected nil set error, got %v", err)
	}
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("expected nil delete error, got %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping error when unavailable")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("expected nil close error, got %v", err)
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	if hit || err != nil {
		t.Fatalf("expected nil receiver to miss, got hit=%v err=%v", hit, err)
	}
}
