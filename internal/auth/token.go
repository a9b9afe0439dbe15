package auth

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
)

// DefaultTokenTTL is how long an identity token stays valid.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken covers a bad signature, expiry, malformed text and a
	// missing subject alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrSigningUnavailable is returned by Issue on a verify-only manager.
	ErrSigningUnavailable = errors.New("token signing key not configured")
)

// Identity is the principal carried by a token.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Claims is the token payload.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies EdDSA identity tokens. Only the API holds
// the private key; clients get a verify-only manager built from the public
// key.
type TokenManager struct {
	private ed25519.PrivateKey
	public  ed25519.PublicKey
	ttl     time.Duration
	now     func() time.Time
}

// TokenOption configures a TokenManager.
type TokenOption func(*TokenManager)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) TokenOption {
	return func(m *TokenManager) { m.ttl = ttl }
}

// NewTokenManager derives a signing key pair from secret.
func NewTokenManager(secret string, opts ...TokenOption) *TokenManager {
	seed := sha256.Sum256([]byte(secret))
	private := ed25519.NewKeyFromSeed(seed[:])
	return newManager(private, private.Public().(ed25519.PublicKey), opts)
}

// NewTokenVerifier creates a manager that can verify but not issue tokens.
func NewTokenVerifier(public ed25519.PublicKey, opts ...TokenOption) *TokenManager {
	return newManager(nil, public, opts)
}

func newManager(private ed25519.PrivateKey, public ed25519.PublicKey, opts []TokenOption) *TokenManager {
	m := &TokenManager{
		private: private,
		public:  public,
		ttl:     DefaultTokenTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PublicKey returns the verification key.
func (m *TokenManager) PublicKey() ed25519.PublicKey {
	return m.public
}

// EncodePublicKey renders key in the form ParsePublicKey accepts.
func EncodePublicKey(key ed25519.PublicKey) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ParsePublicKey decodes a base64 Ed25519 public key.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decoding public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key is %d bytes, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// IdentityFor builds the token principal for a stored user.
func IdentityFor(u *entities.User) Identity {
	return Identity{
		ID:    u.ID,
		Name:  u.DisplayName(),
		Email: u.Email,
		Role:  entities.RoleName(u.RoleID),
	}
}

// Issue signs a token for id expiring one TTL from now.
func (m *TokenManager) Issue(id Identity) (string, error) {
	if m.private == nil {
		return "", ErrSigningUnavailable
	}

	now := m.now()
	claims := Claims{
		Name:  id.Name,
		Email: id.Email,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(m.private)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry together and returns the principal.
func (m *TokenManager) Verify(token string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return m.public, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, claims.Subject)
	}

	return Identity{ID: id, Name: claims.Name, Email: claims.Email, Role: claims.Role}, nil
}
