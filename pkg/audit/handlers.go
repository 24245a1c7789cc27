package audit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// eventResponse is the API response for an audit event.
type eventResponse struct {
	ID         string `json:"id"`
	ClosureID  string `json:"closure,omitempty"`
	Actor      string `json:"actor"`
	ActorRole  string `json:"actor_role,omitempty"`
	Action     string `json:"action"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	Duration   string `json:"duration,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func recordToResponse(rec *EventRecord) eventResponse {
	return eventResponse{
		ID:         rec.ID,
		ClosureID:  rec.ClosureID,
		Actor:      rec.Actor,
		ActorRole:  rec.ActorRole,
		Action:     rec.Action,
		Outcome:    rec.Outcome,
		StatusCode: rec.StatusCode,
		Method:     rec.Method,
		Path:       rec.Path,
		Duration:   rec.Duration,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
	}
}

// listEventsHandler handles GET /events.
// Query params: closure, actor, action, outcome, limit.
func listEventsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{
			ClosureID: r.URL.Query().Get("closure"),
			Actor:     r.URL.Query().Get("actor"),
			Action:    r.URL.Query().Get("action"),
			Outcome:   r.URL.Query().Get("outcome"),
		}

		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		records, err := store.List(filter, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list audit events: %v", err))
			return
		}

		events := make([]eventResponse, len(records))
		for i := range records {
			events[i] = recordToResponse(&records[i])
		}
		writeJSON(w, http.StatusOK, events)
	}
}

// getEventHandler handles GET /events/{eventId}.
func getEventHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventId")
		record, err := store.Get(eventID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get audit event: %v", err))
			return
		}
		if record == nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("audit event %q not found", eventID))
			return
		}
		writeJSON(w, http.StatusOK, recordToResponse(record))
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
