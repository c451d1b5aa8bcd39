package balance

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/splitledger/splitledger/pkg/money"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	ctx := context.Background()

	stored := []EntryResponse{
		{FromUser: 1, ToUser: 2, Amount: money.Amount(500)},
	}
	cache.Set(ctx, "balances:group:1", stored)

	var got []EntryResponse
	if !cache.Get(ctx, "balances:group:1", &got) {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0] != stored[0] {
		t.Errorf("got %+v, want %+v", got, stored)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	cache := NewMemoryCache(time.Minute)

	var got []EntryResponse
	if cache.Get(context.Background(), "balances:group:99", &got) {
		t.Error("expected cache miss for unknown key")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(time.Millisecond)
	ctx := context.Background()

	cache.Set(ctx, "balances:totals", []EntryResponse{{FromUser: 1, ToUser: 2, Amount: 100}})
	time.Sleep(5 * time.Millisecond)

	var got []EntryResponse
	if cache.Get(ctx, "balances:totals", &got) {
		t.Error("expected expired entry to miss")
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	stored := []NetBalanceResponse{
		{UserID: 1, Name: "Alice", Net: money.Amount(200)},
		{UserID: 2, Name: "Bob", Net: money.Amount(-200)},
	}
	cache.Set(ctx, "balances:group:1:net", stored)

	var got []NetBalanceResponse
	if !cache.Get(ctx, "balances:group:1:net", &got) {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0] != stored[0] || got[1] != stored[1] {
		t.Errorf("got %+v, want %+v", got, stored)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := NewRedisCache(client, time.Second)
	ctx := context.Background()

	cache.Set(ctx, "balances:user:1", UserBalancesResponse{UserID: 1})
	srv.FastForward(2 * time.Second)

	var got UserBalancesResponse
	if cache.Get(ctx, "balances:user:1", &got) {
		t.Error("expected expired entry to miss")
	}
}

func TestRedisCacheDownIsMiss(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	cache := NewRedisCache(client, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "balances:totals", []UserTotalsResponse{{UserID: 1}})
	srv.Close()

	var got []UserTotalsResponse
	if cache.Get(ctx, "balances:totals", &got) {
		t.Error("expected miss when redis is unreachable")
	}
}
