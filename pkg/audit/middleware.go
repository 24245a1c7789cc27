package audit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// responseCapture wraps http.ResponseWriter to capture the status code.
type responseCapture struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rc *responseCapture) WriteHeader(code int) {
	if !rc.written {
		rc.statusCode = code
		rc.written = true
	}
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	if !rc.written {
		rc.statusCode = http.StatusOK
		rc.written = true
	}
	return rc.ResponseWriter.Write(b)
}

// Middleware creates middleware that records audit events for mutating
// closure API requests. It wraps the ResponseWriter to capture the status
// code, then appends an EventRecord after the handler completes.
func Middleware(store *Store, cfg *Config, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg == nil || !cfg.Enabled || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !isClosureEndpoint(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			startTime := time.Now()

			capture := &responseCapture{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(capture, r)

			outcome := outcomeFromStatus(capture.statusCode)
			if outcome == "denied" && !cfg.LogDenied {
				return
			}

			actorID := "anonymous"
			actorRole := ""
			if actor, ok := rbac.ActorFromContext(r.Context()); ok && actor.Authenticated() {
				actorID = actor.ID
				actorRole = string(actor.Role)
			}

			event := &EventRecord{
				ID:         uuid.New().String(),
				ClosureID:  extractClosureID(r.URL.Path),
				Actor:      actorID,
				ActorRole:  actorRole,
				Action:     extractAction(r.Method, r.URL.Path),
				Outcome:    outcome,
				StatusCode: capture.statusCode,
				Method:     r.Method,
				Path:       r.URL.Path,
				Duration:   time.Since(startTime).String(),
				CreatedAt:  startTime,
			}

			// Best-effort write: don't fail the request if audit write fails.
			if err := store.Append(event); err != nil {
				logger.Error("failed to write audit event", "error", err, "path", r.URL.Path)
			}
		})
	}
}

// outcomeFromStatus maps HTTP status codes to audit outcomes.
func outcomeFromStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "success"
	case code == http.StatusForbidden:
		return "denied"
	default:
		return "failure"
	}
}
