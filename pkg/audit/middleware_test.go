package audit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func auditedHandler(t *testing.T, store *Store, cfg *Config, status int) http.Handler {
	t.Helper()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	return Middleware(store, cfg, discard)(inner)
}

func TestMiddlewareRecordsClosureActions(t *testing.T) {
	store := newTestStore(t)
	handler := auditedHandler(t, store, DefaultConfig(), http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/api/closures/cl-1/approve_gibdd/", nil)
	actor := rbac.Actor{ID: "tp-1", Role: rbac.RoleTrafficPolice}
	req = req.WithContext(rbac.WithActor(req.Context(), actor))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	events, err := store.List(ListFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, "cl-1", event.ClosureID)
	assert.Equal(t, "tp-1", event.Actor)
	assert.Equal(t, string(rbac.RoleTrafficPolice), event.ActorRole)
	assert.Equal(t, "approve_gibdd", event.Action)
	assert.Equal(t, "success", event.Outcome)
	assert.Equal(t, http.StatusOK, event.StatusCode)
}

func TestMiddlewareSkipsReads(t *testing.T) {
	store := newTestStore(t)
	handler := auditedHandler(t, store, DefaultConfig(), http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/closures/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	events, err := store.List(ListFilter{}, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMiddlewareDeniedSuppression(t *testing.T) {
	store := newTestStore(t)
	cfg := DefaultConfig()
	cfg.LogDenied = false
	handler := auditedHandler(t, store, cfg, http.StatusForbidden)

	req := httptest.NewRequest(http.MethodPost, "/api/closures/cl-1/reject/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	events, err := store.List(ListFilter{}, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMiddlewareDisabled(t *testing.T) {
	store := newTestStore(t)
	cfg := DefaultConfig()
	cfg.Enabled = false
	handler := auditedHandler(t, store, cfg, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/api/closures/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	events, err := store.List(ListFilter{}, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMiddlewareAnonymousActor(t *testing.T) {
	store := newTestStore(t)
	handler := auditedHandler(t, store, DefaultConfig(), http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodPost, "/api/closures/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	events, err := store.List(ListFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "anonymous", events[0].Actor)
	assert.Equal(t, "failure", events[0].Outcome)
}
