package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/stonefront-backend/pkg/config"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	allowed, count, err := client.FixedWindowAllow(ctx, "enquiry", "203.0.113.9", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 1 {
		t.Fatalf("expected first request allowed with count 1, got allowed=%v count=%d", allowed, count)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expected expire for first increment")
	}
	if mock.expireCalls[0].key != "sf:ratelimit:enquiry:203.0.113.9" || mock.expireCalls[0].ttl != time.Minute {
		t.Fatalf("unexpected expire call %+v", mock.expireCalls[0])
	}

	allowed, count, err = client.FixedWindowAllow(ctx, "enquiry", "203.0.113.9", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !allowed || count != 2 {
		t.Fatalf("unexpected second call state allowed=%v count=%d", allowed, count)
	}
	if len(mock.expireCalls) != 1 {
		t.Fatalf("expire should not be set again")
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "enquiry", "203.0.113.9", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatalf("expected limit reached")
	}

	allowed, _, err = client.FixedWindowAllow(ctx, "enquiry", "198.51.100.1", 2, time.Minute)
	if err != nil || !allowed {
		t.Fatalf("another subject must have its own window, allowed=%v err=%v", allowed, err)
	}
}

func TestFixedWindowAllowPropagatesErrors(t *testing.T) {
	mock := newMockCmdable()
	mock.incrErr = errors.New("connection refused")
	client := &Client{store: mock}

	allowed, _, err := client.FixedWindowAllow(context.Background(), "enquiry", "ip", 1, time.Minute)
	if err == nil || allowed {
		t.Fatalf("expected error and deny, got allowed=%v err=%v", allowed, err)
	}
}

func TestCacheRoundTripAndMiss(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	key := client.UserDetailsKey(42)

	if _, err := client.Get(ctx, key); !IsMiss(err) {
		t.Fatalf("expected cache miss, got %v", err)
	}
	if err := client.Set(ctx, key, `{"id":42}`, 5*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := client.Get(ctx, key)
	if err != nil || got != `{"id":42}` {
		t.Fatalf("unexpected get result %q err=%v", got, err)
	}
	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); !IsMiss(err) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestSetNXOnlyOnce(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}
	key := client.IdempotencyKey("stripe_webhook", "evt_1")

	first, err := client.SetNX(ctx, key, "1", time.Hour)
	if err != nil || !first {
		t.Fatalf("expected first SetNX to win, got %v %v", first, err)
	}
	second, err := client.SetNX(ctx, key, "1", time.Hour)
	if err != nil || second {
		t.Fatalf("expected second SetNX to lose, got %v %v", second, err)
	}
}

func TestUninitializedClient(t *testing.T) {
	client := &Client{}
	if err := client.Ping(context.Background()); !errors.Is(err, errNotInitialized) {
		t.Fatalf("expected not initialized error, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on empty client should be a no-op, got %v", err)
	}
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("stripe_webhook", "evt_123"); got != "sf:idempotency:stripe_webhook:evt_123" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.RateLimitKey("enquiry", "10.0.0.1"); got != "sf:ratelimit:enquiry:10.0.0.1" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
	if got := client.RateLimitKey("enquiry", ""); got != "sf:ratelimit:enquiry" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
	if got := client.UserDetailsKey(7); got != "sf:user:details:7" {
		t.Fatalf("unexpected user details key %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error without url or address")
	}

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://:secret@cache.internal:6380/3",
		PoolSize:    15,
		DialTimeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.DB != 3 || opts.Password != "secret" {
		t.Fatalf("url fields not parsed: %+v", opts)
	}
	if opts.PoolSize != 15 || opts.DialTimeout != 2*time.Second {
		t.Fatalf("config fallbacks not applied: pool=%d dial=%v", opts.PoolSize, opts.DialTimeout)
	}

	opts, err = optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 1 {
		t.Fatalf("address fields not applied: %+v", opts)
	}
}

type mockCmdable struct {
	data        map[string]string
	incr        map[string]int64
	incrErr     error
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{
		data: make(map[string]string),
		incr: make(map[string]int64),
	}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Incr(ctx context.Context, key string) *redis.IntCmd {
	if m.incrErr != nil {
		return redis.NewIntResult(0, m.incrErr)
	}
	m.incr[key]++
	return redis.NewIntResult(m.incr[key], nil)
}

func (m *mockCmdable) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: expiration})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
