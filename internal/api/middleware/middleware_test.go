package middleware_test

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chandrabs25/Andaman-travel-website/internal/api/middleware"
	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/providers"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

type staticVerifier map[string]auth.Identity

func (v staticVerifier) Verify(token string) (auth.Identity, error) {
	id, found := v[token]
	if !found {
		return auth.Identity{}, auth.ErrInvalidToken
	}
	return id, nil
}

func TestAuthenticate(t *testing.T) {
	verifier := staticVerifier{
		"user-token":  {ID: 1, Role: "user"},
		"admin-token": {ID: 9, Role: "admin"},
	}
	authn := middleware.Authenticate(verifier, nil)

	tests := []struct {
		name       string
		header     string
		guard      func(http.Handler) http.Handler
		wantStatus int
		wantBody   string
	}{
		{"anonymous public", "", nil, http.StatusOK, "ok"},
		{"stale token on public route", "Bearer expired", nil, http.StatusOK, "ok"},
		{"anonymous protected", "", middleware.RequireAuth, http.StatusUnauthorized, "Authentication required"},
		{"stale token on protected route", "Bearer expired", middleware.RequireAuth, http.StatusUnauthorized, "Invalid or expired token"},
		{"user protected", "Bearer user-token", middleware.RequireAuth, http.StatusOK, "ok"},
		{"lowercase scheme", "bearer user-token", middleware.RequireAuth, http.StatusOK, "ok"},
		{"basic scheme ignored", "Basic dXNlcjpwdw==", middleware.RequireAuth, http.StatusUnauthorized, "Authentication required"},
		{"user on admin route", "Bearer user-token", middleware.RequireAdmin, http.StatusForbidden, "Admin access required"},
		{"admin on admin route", "Bearer admin-token", middleware.RequireAdmin, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inner http.Handler = ok
			if tt.guard != nil {
				inner = tt.guard(inner)
			}
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			authn(inner).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

type userTable struct {
	users map[int64]*entities.User
	err   error
}

func (u userTable) GetUserByID(_ context.Context, id int64) (*entities.User, error) {
	return u.users[id], u.err
}

func TestAuthenticate_ResolvesStoredAccount(t *testing.T) {
	verifier := staticVerifier{
		"deleted":      {ID: 42, Role: "user"},
		"claims-admin": {ID: 1, Role: "admin", Name: "Forged"},
		"real-admin":   {ID: 9, Role: "user"},
	}
	users := userTable{users: map[int64]*entities.User{
		1: {ID: 1, Email: "user@example.com", FirstName: "John", LastName: "Doe", RoleID: entities.RoleUser},
		9: {ID: 9, Email: "admin@example.com", FirstName: "Site", LastName: "Admin", RoleID: entities.RoleAdmin},
	}}
	authn := middleware.Authenticate(verifier, users)

	var seen auth.Identity
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.IdentityFromContext(r.Context())
		_, _ = w.Write([]byte("ok"))
	})

	tests := []struct {
		name       string
		token      string
		guard      func(http.Handler) http.Handler
		wantStatus int
		wantBody   string
	}{
		{"deleted subject on protected route", "deleted", middleware.RequireAuth, http.StatusUnauthorized, "Invalid or expired token"},
		{"deleted subject on public route", "deleted", nil, http.StatusOK, "ok"},
		{"role claim ignored", "claims-admin", middleware.RequireAdmin, http.StatusForbidden, "Admin access required"},
		{"stored role wins", "real-admin", middleware.RequireAdmin, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inner http.Handler = capture
			if tt.guard != nil {
				inner = tt.guard(inner)
			}
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			authn(inner).ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	seen = auth.Identity{}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer claims-admin")
	authn(capture).ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, auth.Identity{ID: 1, Name: "John Doe", Email: "user@example.com", Role: "user"}, seen)
}

func TestAuthenticate_StoreFailureIsInternalError(t *testing.T) {
	authn := middleware.Authenticate(staticVerifier{"t": {ID: 1}}, userTable{err: errors.New("database is locked")})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer t")
	rec := httptest.NewRecorder()
	authn(ok).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "locked")
}

func TestCORS(t *testing.T) {
	restricted := middleware.CORS([]string{"https://andaman.example"})(ok)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://andaman.example")
	rec := httptest.NewRecorder()
	restricted.ServeHTTP(rec, r)
	assert.Equal(t, "https://andaman.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	restricted.ServeHTTP(rec, r)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	r = httptest.NewRequest(http.MethodOptions, "/", nil)
	r.Header.Set("Origin", "https://elsewhere.example")
	rec = httptest.NewRecorder()
	middleware.CORS(nil)(ok).ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	middleware.Recovery(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"An internal server error occurred"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(middleware.RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(middleware.RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "req-42", seen)
}

func TestRateLimiter_LocalWindow(t *testing.T) {
	limiter := middleware.NewRateLimiter("test", 2, time.Minute, nil)
	h := limiter.Middleware(ok)

	send := func(ip string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	down bool
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errors.New("connection refused")
	}
	v, found := m.data[key]
	if !found {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if matched, _ := path.Match(pattern, k); matched {
			delete(m.data, k)
		}
	}
	return nil
}

func (m *memoryCache) Incr(_ context.Context, key string, _ int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return 0, errors.New("connection refused")
	}
	n, _ := strconv.ParseInt(string(m.data[key]), 10, 64)
	n++
	m.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (m *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, found := m.data[key]
	return found, nil
}

func TestRateLimiter_SharedCache(t *testing.T) {
	cache := &memoryCache{data: map[string][]byte{}}
	proxies, err := middleware.ParseTrustedProxies([]string{"192.0.2.1", "10.0.0.0/8"})
	require.NoError(t, err)
	first := middleware.NewRateLimiter("ratelimit:auth", 1, time.Minute, cache, middleware.WithTrustedProxies(proxies)).Middleware(ok)
	second := middleware.NewRateLimiter("ratelimit:auth", 1, time.Minute, cache, middleware.WithTrustedProxies(proxies)).Middleware(ok)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "192.0.2.1:4000"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, cache.data, "ratelimit:auth:203.0.113.7")

	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	cache.mu.Lock()
	cache.down = true
	cache.mu.Unlock()
	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code, "falls back to local counters")
}

func TestRateLimiter_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	h := middleware.NewRateLimiter("ratelimit:auth", 10, 15*time.Minute, nil).Middleware(ok)

	limited := 0
	for i := 0; i < 100; i++ {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		r.RemoteAddr = "198.51.100.9:40000"
		r.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		r.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 90, limited)
}

func TestRateLimiter_SharedCacheCountsConcurrentAttempts(t *testing.T) {
	cache := &memoryCache{data: map[string][]byte{}}
	h := middleware.NewRateLimiter("ratelimit:auth", 10, time.Minute, cache).Middleware(ok)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
			r.RemoteAddr = "198.51.100.9:40000"
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}

func TestParseTrustedProxies(t *testing.T) {
	proxies, err := middleware.ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.1 ", "", "::1"})
	require.NoError(t, err)
	assert.Len(t, proxies, 3)

	_, err = middleware.ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
}

func TestResponseOptimization(t *testing.T) {
	h := middleware.ResponseOptimization(ok)

	r := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=60, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	r = httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	r.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	r = httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	r.Header.Set("Authorization", "Bearer x")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
}
