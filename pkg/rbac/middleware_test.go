package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureActor returns a handler that records the Actor seen in context.
func captureActor(got *Actor, found *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		*got = actor
		*found = ok
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityMiddleware_Headers(t *testing.T) {
	var got Actor
	var found bool
	handler := IdentityMiddleware()(captureActor(&got, &found))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Id", "u-42")
	req.Header.Set("X-User-Name", "ivanov")
	req.Header.Set("X-User-Role", "administration")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, found)
	assert.Equal(t, "u-42", got.ID)
	assert.Equal(t, "ivanov", got.Username)
	assert.Equal(t, RoleAdministration, got.Role)
}

func TestIdentityMiddleware_MissingUser(t *testing.T) {
	var got Actor
	var found bool
	handler := IdentityMiddleware()(captureActor(&got, &found))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-Role", "administration") // role without identity

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, found, "no actor should be attached without X-User-Id")
	assert.False(t, got.Authenticated())
}

func TestJWTIdentityMiddleware_TrustedProxyMode(t *testing.T) {
	mw, err := JWTIdentityMiddleware(JWTIdentityConfig{RoleClaim: "role"})
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                "u-7",
		"preferred_username": "petrov",
		"role":               "traffic_police",
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	var got Actor
	var found bool
	handler := mw(captureActor(&got, &found))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, found)
	assert.Equal(t, "u-7", got.ID)
	assert.Equal(t, "petrov", got.Username)
	assert.Equal(t, RoleTrafficPolice, got.Role)
}

func TestJWTIdentityMiddleware_NestedRoleClaim(t *testing.T) {
	mw, err := JWTIdentityMiddleware(JWTIdentityConfig{RoleClaim: "portal.role"})
	require.NoError(t, err)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "u-9",
		"portal": map[string]any{"role": "railway_operator"},
	})
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)

	var got Actor
	var found bool
	handler := mw(captureActor(&got, &found))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, found)
	assert.Equal(t, RoleRailwayOperator, got.Role)
}

func TestJWTIdentityMiddleware_NoToken(t *testing.T) {
	mw, err := JWTIdentityMiddleware(JWTIdentityConfig{})
	require.NoError(t, err)

	var got Actor
	var found bool
	handler := mw(captureActor(&got, &found))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, found)
	assert.False(t, got.Authenticated())
}

func TestJWTIdentityMiddleware_MalformedToken(t *testing.T) {
	mw, err := JWTIdentityMiddleware(JWTIdentityConfig{})
	require.NoError(t, err)

	var got Actor
	var found bool
	handler := mw(captureActor(&got, &found))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.False(t, found, "malformed token should not attach an actor")
}
