package crossing

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// NewRouter creates a chi router with crossing registry routes.
// Read access requires authentication; mutation is restricted to the
// railway operator role.
func NewRouter(store *Store) chi.Router {
	r := chi.NewRouter()

	r.Get("/", listCrossingsHandler(store))
	r.Post("/", createCrossingHandler(store))
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", getCrossingHandler(store))
		r.Put("/", updateCrossingHandler(store))
		r.Delete("/", deleteCrossingHandler(store))
	})

	return r
}

// crossingRequest is the mutation request body.
type crossingRequest struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
}

func listCrossingsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		records, err := store.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list crossings: %v", err))
			return
		}
		crossings := make([]Crossing, len(records))
		for i := range records {
			crossings[i] = recordToCrossing(&records[i])
		}
		writeJSON(w, http.StatusOK, crossings)
	}
}

func getCrossingHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		rec, err := store.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get crossing: %v", err))
			return
		}
		if rec == nil {
			writeError(w, http.StatusNotFound, "crossing not found")
			return
		}
		writeJSON(w, http.StatusOK, recordToCrossing(rec))
	}
}

func createCrossingHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireOperator(w, r); !ok {
			return
		}
		var body crossingRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		rec := &Record{
			ID:          uuid.New().String(),
			Name:        body.Name,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
			Description: body.Description,
		}
		if err := store.Create(rec); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create crossing: %v", err))
			return
		}
		writeJSON(w, http.StatusCreated, recordToCrossing(rec))
	}
}

func updateCrossingHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireOperator(w, r); !ok {
			return
		}
		var body crossingRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rec := &Record{
			ID:          chi.URLParam(r, "id"),
			Name:        body.Name,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
			Description: body.Description,
		}
		if err := store.Update(rec); err != nil {
			if err == gorm.ErrRecordNotFound {
				writeError(w, http.StatusNotFound, "crossing not found")
				return
			}
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to update crossing: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, recordToCrossing(rec))
	}
}

func deleteCrossingHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireOperator(w, r); !ok {
			return
		}
		if err := store.Delete(chi.URLParam(r, "id")); err != nil {
			if err == gorm.ErrRecordNotFound {
				writeError(w, http.StatusNotFound, "crossing not found")
				return
			}
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete crossing: %v", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// requireActor ensures the request is authenticated.
func requireActor(w http.ResponseWriter, r *http.Request) (rbac.Actor, bool) {
	actor, ok := rbac.ActorFromContext(r.Context())
	if !ok || !actor.Authenticated() {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return rbac.Actor{}, false
	}
	return actor, true
}

// requireOperator ensures the request is authenticated as a railway operator.
func requireOperator(w http.ResponseWriter, r *http.Request) (rbac.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return rbac.Actor{}, false
	}
	if !rbac.HasCapability(actor.Role, rbac.CapCreateClosure) {
		writeError(w, http.StatusForbidden, "railway operator role required")
		return rbac.Actor{}, false
	}
	return actor, true
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
