package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// NewRouter creates a chi router serving the export feed consumed by the
// map provider integration.
func NewRouter(projector *Projector) chi.Router {
	r := chi.NewRouter()
	r.Get("/yandex/", exportHandler(projector))
	return r
}

func exportHandler(projector *Projector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := rbac.ActorFromContext(r.Context())
		if !ok || !actor.Authenticated() {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		entries, err := projector.ExportApproved()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("failed to build export feed: %v", err),
			})
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
