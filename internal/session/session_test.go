package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	id := uuid.NewString()
	listingID := uuid.New()

	sess := &Session{ListingInProgress: &listingID}
	sess.SetLP(map[string]string{"licence": "AB123C", "make": "Volkswagen"})
	if err := store.Save(ctx, id, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(redisKeyPrefix + id); ttl != time.Hour {
		t.Fatalf("expected ttl of one hour, got %s", ttl)
	}

	loaded, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ListingInProgress == nil || *loaded.ListingInProgress != listingID {
		t.Fatalf("expected listing in progress %s, got %v", listingID, loaded.ListingInProgress)
	}
	if loaded.LPData["make"] != "Volkswagen" {
		t.Fatalf("expected LP data to survive, got %v", loaded.LPData)
	}
}

func TestRedisStoreMissingAndExpired(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	empty, err := store.Get(ctx, "unknown")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if empty.HasDraft() || empty.HasLPData() {
		t.Fatalf("expected empty session, got %+v", empty)
	}

	if err := store.Save(ctx, "abc", &Session{LPData: map[string]string{"licence": "X"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Hour)
	expired, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if expired.HasLPData() {
		t.Fatal("expected session to expire")
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	if err := store.Save(ctx, "abc", &Session{LPData: map[string]string{"licence": "X"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	sess, _ := store.Get(ctx, "abc")
	if sess.HasLPData() {
		t.Fatal("expected session to be gone")
	}
}

func TestStoresRejectEmptyID(t *testing.T) {
	store, _ := newRedisStore(t)
	if _, err := store.Get(context.Background(), ""); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	mem := NewMemoryStore(time.Hour)
	if err := mem.Save(context.Background(), "", &Session{}); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, "abc", &Session{LPData: map[string]string{"licence": "X"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, _ := store.Get(ctx, "abc")
	if !sess.HasLPData() {
		t.Fatal("expected stored session")
	}

	sess.LPData["licence"] = "mutated"
	again, _ := store.Get(ctx, "abc")
	if again.LPData["licence"] != "X" {
		t.Fatal("expected store to be isolated from caller mutations")
	}

	now = now.Add(2 * time.Minute)
	expired, _ := store.Get(ctx, "abc")
	if expired.HasLPData() {
		t.Fatal("expected session to expire")
	}
}

func TestSessionHelpers(t *testing.T) {
	sess := &Session{}
	id := uuid.New()
	if !sess.MarkViewed(id) {
		t.Fatal("expected first view")
	}
	if sess.MarkViewed(id) {
		t.Fatal("expected repeat view to be ignored")
	}

	sess.ListingInProgress = &id
	sess.SetLP(map[string]string{"licence": "AB123C"})
	sess.SetLP(map[string]string{"makeId": "3"})
	if sess.LPData["licence"] != "AB123C" || sess.LPData["makeId"] != "3" {
		t.Fatalf("expected merged LP data, got %v", sess.LPData)
	}

	sess.ClearDraft()
	if sess.HasDraft() || sess.HasLPData() {
		t.Fatal("expected draft state to be cleared")
	}
	if len(sess.Viewed) != 1 {
		t.Fatal("expected viewed listings to survive a draft reset")
	}
}

func TestMarkViewedKeepsRecentHistory(t *testing.T) {
	sess := &Session{}
	first := uuid.New()
	sess.MarkViewed(first)
	for i := 0; i < MaxViewed; i++ {
		sess.MarkViewed(uuid.New())
	}
	if len(sess.Viewed) != MaxViewed {
		t.Fatalf("expected %d viewed listings, got %d", MaxViewed, len(sess.Viewed))
	}
	if sess.Viewed[0] == first {
		t.Fatal("expected the oldest view to be dropped")
	}

	last := sess.Viewed[len(sess.Viewed)-1]
	if sess.MarkViewed(last) {
		t.Fatal("expected a recent view to still be remembered")
	}
	if !sess.MarkViewed(first) {
		t.Fatal("expected a forgotten view to count again")
	}
}
