package closure

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// closureRequest is the create/update request body.
type closureRequest struct {
	RailwayCrossing string `json:"railway_crossing"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Reason          string `json:"reason"`
}

// parseWindow parses the request time window. Zero times pass through so
// the service reports the missing fields as a validation error.
func (req *closureRequest) parseWindow() (start, end time.Time, err error) {
	if req.StartDate != "" {
		start, err = time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, Validation("start_date must be RFC 3339: %v", err)
		}
	}
	if req.EndDate != "" {
		end, err = time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, Validation("end_date must be RFC 3339: %v", err)
		}
	}
	return start, end, nil
}

func listClosuresHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		records, err := svc.List(Status(r.URL.Query().Get("status")))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		closures := make([]Closure, len(records))
		for i := range records {
			closures[i] = recordToClosure(&records[i], nil, nil)
		}
		writeJSON(w, http.StatusOK, closures)
	}
}

func getClosureHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		id := chi.URLParam(r, "id")
		rec, err := svc.Get(id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func createClosureHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var body closureRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		start, end, err := body.parseWindow()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		rec, err := svc.Create(actor, body.RailwayCrossing, start, end, body.Reason)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusCreated, svc, crossings, rec)
	}
}

func updateClosureHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var body closureRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		start, end, err := body.parseWindow()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		rec, err := svc.UpdateDraft(actor, chi.URLParam(r, "id"), body.RailwayCrossing, start, end, body.Reason)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func deleteClosureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(actor, chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func signClosureHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var body struct {
			DigitalSignature string `json:"digital_signature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rec, err := svc.Sign(actor, chi.URLParam(r, "id"), body.DigitalSignature)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func submitClosureHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		rec, err := svc.SubmitForApproval(actor, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func approveAdministrationHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		rec, err := svc.ApproveAsAdministration(actor, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func approveGibddHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		rec, err := svc.ApproveAsTrafficPolice(actor, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func rejectClosureHandler(svc *Service, crossings *crossing.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		rec, err := svc.Reject(actor, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeClosureDetail(w, http.StatusOK, svc, crossings, rec)
	}
}

func listCommentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		records, err := svc.ListComments(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		comments := make([]Comment, len(records))
		for i := range records {
			comments[i] = recordToComment(&records[i])
		}
		writeJSON(w, http.StatusOK, comments)
	}
}

func addCommentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rec, err := svc.AddComment(actor, chi.URLParam(r, "id"), body.Text)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, recordToComment(rec))
	}
}

func listDocumentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		records, err := svc.ListDocuments(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		documents := make([]Document, len(records))
		for i := range records {
			documents[i] = recordToDocument(&records[i])
		}
		writeJSON(w, http.StatusOK, documents)
	}
}

func addDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		var body struct {
			Title        string       `json:"title"`
			File         string       `json:"file"`
			DocumentType DocumentType `json:"document_type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		rec, err := svc.AddDocument(actor, chi.URLParam(r, "id"), body.Title, body.File, body.DocumentType)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, recordToDocument(rec))
	}
}

func deleteDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteDocument(actor, chi.URLParam(r, "docId")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// activitiesHandler serves the recent-activity feed: the latest comments
// across all closures.
func activitiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireActor(w, r); !ok {
			return
		}
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		records, err := svc.RecentActivity(limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		activities := make([]Activity, len(records))
		for i := range records {
			activities[i] = Activity{
				ClosureID: records[i].ClosureID,
				Comment:   recordToComment(&records[i]),
			}
		}
		writeJSON(w, http.StatusOK, activities)
	}
}

// writeClosureDetail writes a closure with its crossing detail and comments
// joined in.
func writeClosureDetail(w http.ResponseWriter, status int, svc *Service, crossings *crossing.Store, rec *Record) {
	xing, err := crossings.Get(rec.CrossingID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load crossing: %v", err))
		return
	}
	comments, err := svc.store.ListComments(rec.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load comments: %v", err))
		return
	}
	writeJSON(w, status, recordToClosure(rec, xing, comments))
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

// writeServiceError maps a service error to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, HTTPStatus(err), err.Error())
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
