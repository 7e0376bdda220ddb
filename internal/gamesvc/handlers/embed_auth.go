package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/minerush/game-services/internal/gamesvc/models"
)

type contextKey string

const partnerContextKey contextKey = "embed_partner"

// embedToken pulls the bearer secret from the request. Partner snippets
// send X-Embed-Token; Authorization: Bearer also works.
func embedToken(r *http.Request) string {
	if t := r.Header.Get("X-Embed-Token"); t != "" {
		return t
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// RequireCapability authorizes the embed token for one capability and
// stows the owning partner on the request context. Unknown tokens and
// malformed permission documents are both denied.
func (h *Handler) RequireCapability(capability models.Capability) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			partner, err := h.authService.Authorize(r.Context(), embedToken(r), capability)
			if err != nil {
				h.CreateErrorResponse(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), partnerContextKey, partner)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// partnerFrom returns the partner placed by RequireCapability.
func partnerFrom(ctx context.Context) *models.Partner {
	p, _ := ctx.Value(partnerContextKey).(*models.Partner)
	return p
}
