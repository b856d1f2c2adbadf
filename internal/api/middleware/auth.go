package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hszk-dev/vidshare/internal/auth"
)

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// Authenticator reads the access token from the Authorization header or,
// failing that, from the access token cookie.
type Authenticator struct {
	verifier   TokenVerifier
	cookieName string
	logger     *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(verifier TokenVerifier, cookieName string, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{verifier: verifier, cookieName: cookieName, logger: logger}
}

// Require rejects requests without a valid token with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.token(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		userID, err := a.verifier.Verify(token)
		if err != nil {
			a.logger.Debug("rejected access token",
				slog.String("request_id", GetRequestID(r.Context())),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid access token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), userID)))
	})
}

// Optional attaches the principal when a valid token is present and
// otherwise serves the request anonymously.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := a.verifier.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), userID)))
	})
}

func (a *Authenticator) token(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw != "" {
		if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
			return strings.TrimSpace(raw[7:])
		}
		return raw
	}

	if a.cookieName == "" {
		return ""
	}
	cookie, err := r.Cookie(a.cookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}
