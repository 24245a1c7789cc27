package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// NewRouter creates a chi router for the audit events API. Only the
// approving authorities may read the trail.
func NewRouter(store *Store) chi.Router {
	r := chi.NewRouter()
	r.Get("/events", requireAuthority(listEventsHandler(store)))
	r.Get("/events/{eventId}", requireAuthority(getEventHandler(store)))
	return r
}

// requireAuthority restricts access to administration and traffic police.
func requireAuthority(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := rbac.ActorFromContext(r.Context())
		if !ok || !actor.Authenticated() {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !rbac.HasCapability(actor.Role, rbac.CapRejectPending) {
			writeError(w, http.StatusForbidden, "audit trail is restricted to approving authorities")
			return
		}
		next(w, r)
	}
}
