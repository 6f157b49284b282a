package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/models"
)

func newTestRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client), mr
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	userID := uuid.New()
	expires := time.Now().Add(time.Hour).UTC()
	if err := store.Replace(ctx, models.Session{ID: "a", UserID: userID, ExpiresAt: expires}); err != nil {
		t.Fatalf("replace a: %v", err)
	}

	got, err := store.Get(ctx, "a")
	if err != nil || got == nil || got.UserID != userID {
		t.Fatalf("get = %+v, %v", got, err)
	}
	if ttl := mr.TTL("session:a"); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	if err := store.Replace(ctx, models.Session{ID: "b", UserID: userID, ExpiresAt: expires}); err != nil {
		t.Fatalf("replace b: %v", err)
	}
	if got, _ := store.Get(ctx, "a"); got != nil {
		t.Fatal("earlier session survived a new login")
	}
	if members, _ := mr.Members("user_sessions:" + userID.String()); len(members) != 1 || members[0] != "b" {
		t.Fatalf("user set = %v, want [b]", members)
	}

	other := models.Session{ID: "c", UserID: uuid.New(), ExpiresAt: expires}
	if err := store.Replace(ctx, other); err != nil {
		t.Fatalf("replace c: %v", err)
	}
	if got, _ := store.Get(ctx, "b"); got == nil {
		t.Fatal("another user's login revoked this session")
	}

	if err := store.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := store.Get(ctx, "b"); got != nil {
		t.Fatal("deleted session still present")
	}

	if got, err := store.Get(ctx, "missing"); err != nil || got != nil {
		t.Fatalf("missing = %+v, %v", got, err)
	}
}

func TestRedisSessionStoreExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	s := models.Session{ID: "short", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Minute)}
	if err := store.Replace(ctx, s); err != nil {
		t.Fatalf("replace: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if got, _ := store.Get(ctx, "short"); got != nil {
		t.Fatal("session outlived its ttl")
	}
}

func TestRedisSessionTTLFollowsIssuedLifetime(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestRedisStore(t)

	// Issued by a clock a day behind this one.
	issued := time.Now().Add(-24 * time.Hour).UTC()
	s := models.Session{ID: "skewed", UserID: uuid.New(), CreatedAt: issued, ExpiresAt: issued.Add(time.Minute)}
	if err := store.Replace(ctx, s); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if ttl := mr.TTL("session:skewed"); ttl != time.Minute {
		t.Fatalf("ttl = %v, want %v", ttl, time.Minute)
	}
}

func TestServiceWithRedisSessions(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestRedisStore(t)
	svc, _ := newTestService(t, store)
	if _, err := svc.CreateUser(ctx, "admin", "admin123", true); err != nil {
		t.Fatalf("create user: %v", err)
	}

	first, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if _, err := svc.Resolve(ctx, first.Token); !errs.IsInvalidTokenError(err) {
		t.Fatalf("first token should be revoked, got %v", err)
	}
}
