package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/hszk-dev/vidshare/internal/auth"
)

// requirePrincipal returns the authenticated user or writes a 401.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		Unauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}
