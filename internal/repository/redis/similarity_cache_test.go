package redis

import (
	"context"
	"testing"
	"time"

	"rateMenu/business/recommend"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*SimilarityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSimilarityCache(client, ttl), mr
}

func TestSimilarityCache_RoundTrip(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	sim := &recommend.SimilarityMatrix{
		Users:  []int64{1, 2},
		Values: [][]float64{{1, 0.25}, {0.25, 1}},
	}

	if err := cache.SaveSimilarity(ctx, "abc", sim); err != nil {
		t.Fatalf("SaveSimilarity() error = %v", err)
	}
	if !mr.Exists("similarity:abc") {
		t.Fatal("expected key similarity:abc to exist")
	}
	if ttl := mr.TTL("similarity:abc"); ttl != time.Minute {
		t.Errorf("TTL = %v, want %v", ttl, time.Minute)
	}

	got, ok, err := cache.GetSimilarity(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("GetSimilarity() = _, %v, %v, want hit", ok, err)
	}
	if len(got.Users) != 2 || got.Users[1] != 2 || got.Values[0][1] != 0.25 {
		t.Errorf("GetSimilarity() = %+v, want %+v", got, sim)
	}
}

func TestSimilarityCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	got, ok, err := cache.GetSimilarity(context.Background(), "missing")
	if err != nil || ok || got != nil {
		t.Errorf("GetSimilarity() = %v, %v, %v, want nil, false, nil", got, ok, err)
	}
}

func TestSimilarityCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	sim := &recommend.SimilarityMatrix{Users: []int64{1}, Values: [][]float64{{1}}}
	if err := cache.SaveSimilarity(ctx, "k", sim); err != nil {
		t.Fatalf("SaveSimilarity() error = %v", err)
	}

	mr.FastForward(11 * time.Second)

	if _, ok, err := cache.GetSimilarity(ctx, "k"); ok || err != nil {
		t.Errorf("GetSimilarity() after TTL = %v, %v, want miss", ok, err)
	}
}

func TestSimilarityCache_CorruptValue(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	if err := mr.Set("similarity:bad", "not json"); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := cache.GetSimilarity(context.Background(), "bad"); err == nil || ok {
		t.Errorf("GetSimilarity() = %v, %v, want error", ok, err)
	}
}

func TestSimilarityCache_ServerDown(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	mr.Close()

	if _, _, err := cache.GetSimilarity(context.Background(), "k"); err == nil {
		t.Error("GetSimilarity() error = nil, want connection error")
	}
	if err := cache.SaveSimilarity(context.Background(), "k", &recommend.SimilarityMatrix{}); err == nil {
		t.Error("SaveSimilarity() error = nil, want connection error")
	}
}
