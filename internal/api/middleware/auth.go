package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/chandrabs25/Andaman-travel-website/internal/auth"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/infrastructure/observability"
)

// TokenVerifier checks a bearer token.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type rejectedTokenKey struct{}

// UserLookup resolves a token subject to the stored account.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*entities.User, error)
}

// Authenticate attaches the identity carried by a valid bearer token.
// Requests without one, or with one that fails verification, continue
// anonymously so public routes keep working with a stale token.
//
// With a non-nil users the subject must still exist, and the attached role,
// name and email come from the stored account rather than the claims.
func Authenticate(verifier TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			logger := observability.LoggerFromContext(r.Context())
			identity, err := verifier.Verify(token)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected bearer token")
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), rejectedTokenKey{}, true)))
				return
			}

			if users != nil {
				user, err := users.GetUserByID(r.Context(), identity.ID)
				if err != nil {
					logger.Error().Err(err).Int64("user_id", identity.ID).Msg("resolving token subject")
					writeError(w, http.StatusInternalServerError, "An internal server error occurred")
					return
				}
				if user == nil {
					logger.Debug().Int64("user_id", identity.ID).Msg("token subject no longer exists")
					next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), rejectedTokenKey{}, true)))
					return
				}
				identity = auth.IdentityFor(user)
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAuth answers 401 unless Authenticate attached an identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.IdentityFromContext(r.Context()); !ok {
			unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin answers 401 for anonymous callers and 403 for non-admins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			unauthorized(w, r)
			return
		}
		if !identity.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if rejected, _ := r.Context().Value(rejectedTokenKey{}).(bool); rejected {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeError(w, http.StatusUnauthorized, "Authentication required")
}
