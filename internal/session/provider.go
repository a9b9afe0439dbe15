// Package session is the client-side identity provider: it logs in against
// the HTTP API, keeps the resulting identity token and restores it on start.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
)

// State is the provider's authentication state.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// loginUser is the subset of the login response the provider needs.
type loginUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// TokenVerifier checks tokens the API signed.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Provider holds the current identity. All methods are safe for concurrent
// use.
type Provider struct {
	baseURL  string
	client   *http.Client
	tokens   TokenStore
	verifier TokenVerifier

	// OnLogout runs after Logout clears the session, typically to navigate
	// back to the login screen.
	OnLogout func()

	mu    sync.RWMutex
	state State
	user  *auth.Identity
	token string
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.client = c }
}

// WithOnLogout sets the logout hook.
func WithOnLogout(fn func()) Option {
	return func(p *Provider) { p.OnLogout = fn }
}

// NewProvider creates an unauthenticated provider for the API at baseURL.
func NewProvider(baseURL string, tokens TokenStore, verifier TokenVerifier, opts ...Option) *Provider {
	p := &Provider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: 10 * time.Second},
		tokens:   tokens,
		verifier: verifier,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Login posts credentials. On success it verifies and stores the identity
// token the API issued and becomes Authenticated. Any failure leaves the
// provider unchanged.
func (p *Provider) Login(ctx context.Context, email, password string) bool {
	env, err := p.post(ctx, "/api/auth/login", map[string]string{"email": email, "password": password})
	if err != nil {
		log.Warn().Err(err).Msg("login request failed")
		return false
	}
	if !env.Success {
		log.Debug().Str("message", env.Message).Msg("login rejected")
		return false
	}

	var u loginUser
	if err := json.Unmarshal(env.Data, &u); err != nil || u.ID <= 0 {
		log.Warn().Err(err).Msg("login response has no user")
		return false
	}

	identity, err := p.verifier.Verify(u.Token)
	if err != nil {
		log.Warn().Err(err).Msg("login response token rejected")
		return false
	}
	if identity.ID != u.ID {
		log.Warn().Int64("user_id", u.ID).Int64("subject", identity.ID).Msg("login token names another user")
		return false
	}
	token := u.Token
	if err := p.tokens.Set(TokenKey, token); err != nil {
		log.Error().Err(err).Msg("storing identity token")
		return false
	}

	p.mu.Lock()
	p.state, p.user, p.token = Authenticated, &identity, token
	p.mu.Unlock()
	return true
}

// Logout deletes the stored token, clears the identity and runs OnLogout.
func (p *Provider) Logout() {
	if err := p.tokens.Delete(TokenKey); err != nil {
		log.Warn().Err(err).Msg("removing identity token")
	}

	p.mu.Lock()
	p.state, p.user, p.token = Unauthenticated, nil, ""
	hook := p.OnLogout
	p.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Register creates an account. It does not log in.
func (p *Provider) Register(ctx context.Context, name, email, password string) bool {
	env, err := p.post(ctx, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		log.Warn().Err(err).Msg("register request failed")
		return false
	}
	if !env.Success {
		log.Debug().Str("message", env.Message).Msg("registration rejected")
	}
	return env.Success
}

// Restore loads the stored token. A token that fails signature or expiry
// checks is deleted and the provider stays Unauthenticated.
func (p *Provider) Restore() bool {
	token, ok, err := p.tokens.Get(TokenKey)
	if err != nil {
		log.Warn().Err(err).Msg("reading identity token")
		return false
	}
	if !ok || token == "" {
		return false
	}

	identity, err := p.verifier.Verify(token)
	if err != nil {
		log.Debug().Err(err).Msg("discarding stored token")
		if err := p.tokens.Delete(TokenKey); err != nil {
			log.Warn().Err(err).Msg("removing identity token")
		}
		p.mu.Lock()
		p.state, p.user, p.token = Unauthenticated, nil, ""
		p.mu.Unlock()
		return false
	}

	p.mu.Lock()
	p.state, p.user, p.token = Authenticated, &identity, token
	p.mu.Unlock()
	return true
}

// State returns the current authentication state.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// CurrentUser returns the identity while Authenticated.
func (p *Provider) CurrentUser() (auth.Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return auth.Identity{}, false
	}
	return *p.user, true
}

func (p *Provider) IsAuthenticated() bool {
	return p.State() == Authenticated
}

// NewRequest builds an API request, adding the bearer token when
// Authenticated.
func (p *Provider) NewRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	p.mu.RLock()
	token := p.token
	p.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Do sends req and decodes the response envelope. data, when non-nil,
// receives the envelope's data on success.
func (p *Provider) Do(req *http.Request, data any) (bool, string, error) {
	env, err := p.send(req)
	if err != nil {
		return false, "", err
	}
	if env.Success && data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return false, "", fmt.Errorf("decoding data: %w", err)
		}
	}
	return env.Success, env.Message, nil
}

func (p *Provider) post(ctx context.Context, path string, body any) (*envelope, error) {
	req, err := p.NewRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return p.send(req)
}

func (p *Provider) send(req *http.Request) (*envelope, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", resp.Status, err)
	}
	return &env, nil
}
