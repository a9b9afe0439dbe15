package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

// RateLimiter caps requests per client IP within a fixed window. Counters
// live in the shared cache when one is configured so every instance sees the
// same budget, otherwise in process memory.
type RateLimiter struct {
	prefix  string
	limit   int
	window  time.Duration
	cache   providers.CacheProvider
	local   *localRateLimiter
	trusted []netip.Prefix
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithTrustedProxies lets forwarding headers name the client when the
// connection comes from one of these networks.
func WithTrustedProxies(proxies []netip.Prefix) RateLimiterOption {
	return func(l *RateLimiter) { l.trusted = proxies }
}

// NewRateLimiter creates a limiter. cache may be nil.
func NewRateLimiter(prefix string, limit int, window time.Duration, cache providers.CacheProvider, opts ...RateLimiterOption) *RateLimiter {
	l := &RateLimiter{
		prefix: prefix,
		limit:  limit,
		window: window,
		cache:  cache,
		local:  newLocalRateLimiter(time.Now),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ParseTrustedProxies accepts bare addresses and CIDR prefixes.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Middleware answers 429 with Retry-After once a client spends its budget.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := l.allow(r.Context(), l.prefix+":"+l.clientIP(r))
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			writeError(w, http.StatusTooManyRequests, "Too many attempts, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) allow(ctx context.Context, key string) (bool, time.Duration) {
	if l.cache == nil {
		return l.local.allow(key, l.limit, l.window)
	}

	ttl := max(int(l.window.Seconds()), 1)
	count, err := l.cache.Incr(ctx, key, ttl)
	if err != nil {
		// cache down: fall back to this instance's counters
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("rate limit cache unavailable")
		return l.local.allow(key, l.limit, l.window)
	}
	if count > int64(l.limit) {
		return false, l.window
	}
	return true, l.window
}

type localRateLimiter struct {
	mu     sync.Mutex
	now    func() time.Time
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter(now func() time.Time) *localRateLimiter {
	return &localRateLimiter{
		now:    now,
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := state.resetAt.Sub(now)
		if retryAfter <= 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

// clientIP is the connection's peer address. Forwarding headers are read
// only when that peer is a trusted proxy; X-Forwarded-For is then walked from
// the right, skipping trusted hops.
func (l *RateLimiter) clientIP(r *http.Request) string {
	peer, ok := parseHost(r.RemoteAddr)
	if !ok {
		return r.RemoteAddr
	}
	if !l.isTrusted(peer) {
		return peer.String()
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		client := peer
		for i := len(hops) - 1; i >= 0; i-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			client = hop.Unmap()
			if !l.isTrusted(client) {
				break
			}
		}
		return client.String()
	}
	if realIP, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return realIP.Unmap().String()
	}
	return peer.String()
}

func (l *RateLimiter) isTrusted(addr netip.Addr) bool {
	for _, prefix := range l.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func parseHost(remoteAddr string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
