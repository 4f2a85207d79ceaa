package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Scopes de cuota: generar preguntas y enviar resultados se cuentan por separado.
const (
	ScopeQuestion = "question"
	ScopeResult   = "result"
)

// anonymousClient agrupa a los clientes sin IP resoluble (unix socket, RemoteAddr raro).
const anonymousClient = "anonymous"

// RateLimiter limita cuantas llamadas al oraculo puede disparar un cliente por ventana y scope.
type RateLimiter interface {
	Allow(ctx context.Context, scope, clientID string) bool
}

// quotaScript incrementa el contador de la ventana y fija su TTL en el primer hit.
const quotaScript = `
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return n
`

type scriptRunner interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisRateLimiter struct {
	redis      scriptRunner
	window     time.Duration
	perWindow  int
	keyPrefix  string
	callBudget time.Duration
}

// NewRedisRateLimiter devuelve nil si no hay cliente; el middleware trata nil como sin limite.
func NewRedisRateLimiter(client *redis.Client, window time.Duration, perWindow int) RateLimiter {
	if client == nil {
		return nil
	}
	return newRedisRateLimiter(client, window, perWindow)
}

func newRedisRateLimiter(runner scriptRunner, window time.Duration, perWindow int) *redisRateLimiter {
	if window < time.Second {
		window = time.Minute
	}
	if perWindow <= 0 {
		perWindow = 1
	}
	return &redisRateLimiter{
		redis:      runner,
		window:     window,
		perWindow:  perWindow,
		keyPrefix:  "quiz:rl:",
		callBudget: 500 * time.Millisecond,
	}
}

// quotaKey arma quiz:rl:<scope>:<cliente>.
func (l *redisRateLimiter) quotaKey(scope, clientID string) string {
	scope = strings.ToLower(strings.TrimSpace(scope))
	if scope == "" {
		scope = ScopeQuestion
	}
	clientID = strings.ToLower(strings.TrimSpace(clientID))
	if clientID == "" {
		clientID = anonymousClient
	}
	return l.keyPrefix + scope + ":" + clientID
}

// Allow is fail-open: a missing limiter or a redis error never blocks a player.
func (l *redisRateLimiter) Allow(ctx context.Context, scope, clientID string) bool {
	if l == nil || l.redis == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, l.callBudget)
	defer cancel()

	n, err := l.redis.Eval(ctx, quotaScript, []string{l.quotaKey(scope, clientID)}, int(l.window/time.Second)).Int()
	if err != nil {
		return true
	}
	return n <= l.perWindow
}
