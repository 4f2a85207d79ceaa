package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// countingRunner cuenta hits por key en memoria, como haria el script en redis.
type countingRunner struct {
	counts map[string]int64
	keys   []string
	ttls   []interface{}
	err    error
}

func (r *countingRunner) Eval(ctx context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	r.keys = append(r.keys, keys...)
	r.ttls = append(r.ttls, args...)
	if r.err != nil {
		cmd.SetErr(r.err)
		return cmd
	}
	if r.counts == nil {
		r.counts = map[string]int64{}
	}
	r.counts[keys[0]]++
	cmd.SetVal(r.counts[keys[0]])
	return cmd
}

func TestRateLimiterQuotaKeys(t *testing.T) {
	l := newRedisRateLimiter(&countingRunner{}, time.Minute, 1)
	cases := []struct {
		scope, client, want string
	}{
		{ScopeQuestion, "10.0.0.1", "quiz:rl:question:10.0.0.1"},
		{ScopeResult, "10.0.0.1", "quiz:rl:result:10.0.0.1"},
		{" Result ", " 2001:DB8::1 ", "quiz:rl:result:2001:db8::1"},
		{ScopeQuestion, "", "quiz:rl:question:anonymous"},
		{"", "10.0.0.1", "quiz:rl:question:10.0.0.1"},
	}
	for _, tc := range cases {
		if got := l.quotaKey(tc.scope, tc.client); got != tc.want {
			t.Fatalf("quotaKey(%q, %q) = %q, want %q", tc.scope, tc.client, got, tc.want)
		}
	}
}

func TestRateLimiterScopesHaveSeparateQuotas(t *testing.T) {
	ctx := context.Background()
	runner := &countingRunner{}
	l := newRedisRateLimiter(runner, 2*time.Minute, 2)

	for i := 0; i < 2; i++ {
		if !l.Allow(ctx, ScopeQuestion, "10.0.0.1") {
			t.Fatalf("question call %d should be allowed", i+1)
		}
	}
	if l.Allow(ctx, ScopeQuestion, "10.0.0.1") {
		t.Fatalf("third question call should be denied")
	}
	if !l.Allow(ctx, ScopeResult, "10.0.0.1") {
		t.Fatalf("result quota must be independent of question quota")
	}

	if runner.keys[0] != "quiz:rl:question:10.0.0.1" || runner.keys[3] != "quiz:rl:result:10.0.0.1" {
		t.Fatalf("unexpected keys %v", runner.keys)
	}
	if runner.ttls[0] != 120 {
		t.Fatalf("expected TTL seconds=120, got %v", runner.ttls[0])
	}
}

func TestRateLimiterFailOpen(t *testing.T) {
	ctx := context.Background()

	var nilLimiter *redisRateLimiter
	if !nilLimiter.Allow(ctx, ScopeQuestion, "10.0.0.1") {
		t.Fatalf("nil limiter must allow")
	}
	if NewRedisRateLimiter(nil, time.Minute, 3) != nil {
		t.Fatalf("expected nil limiter without redis client")
	}

	down := newRedisRateLimiter(&countingRunner{err: errors.New("redis down")}, time.Minute, 1)
	for i := 0; i < 3; i++ {
		if !down.Allow(ctx, ScopeResult, "10.0.0.1") {
			t.Fatalf("redis errors must not block players")
		}
	}

	runner := &countingRunner{}
	noIP := newRedisRateLimiter(runner, time.Minute, 1)
	if !noIP.Allow(ctx, ScopeQuestion, "") {
		t.Fatalf("client without IP must be counted, not rejected")
	}
	if runner.keys[0] != "quiz:rl:question:anonymous" {
		t.Fatalf("expected anonymous bucket, got %v", runner.keys)
	}
}

func TestRateLimiterWithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisRateLimiter(client, time.Minute, 2)
	ctx := context.Background()

	if !l.Allow(ctx, ScopeQuestion, "10.0.0.1") || !l.Allow(ctx, ScopeQuestion, "10.0.0.1") {
		t.Fatalf("expected first two calls allowed")
	}
	if l.Allow(ctx, ScopeQuestion, "10.0.0.1") {
		t.Fatalf("expected third call denied")
	}
	if !l.Allow(ctx, ScopeResult, "10.0.0.1") || !l.Allow(ctx, ScopeQuestion, "10.0.0.2") {
		t.Fatalf("expected other scope and client unaffected")
	}
	if ttl := mr.TTL("quiz:rl:question:10.0.0.1"); ttl != time.Minute {
		t.Fatalf("expected window TTL of 1m, got %s", ttl)
	}
	if !mr.Exists("quiz:rl:result:10.0.0.1") {
		t.Fatalf("expected separate result key")
	}

	mr.FastForward(time.Minute + time.Second)
	if !l.Allow(ctx, ScopeQuestion, "10.0.0.1") {
		t.Fatalf("expected allow after window expired")
	}
}
