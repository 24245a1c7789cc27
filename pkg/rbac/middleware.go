package rbac

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityMiddleware returns HTTP middleware that extracts the acting user
// from X-User-Id, X-User-Name, and X-User-Role headers and stores the Actor
// in the request context. This is the trusted-proxy mode: the fronting
// identity provider has already authenticated the user.
//
// Requests without X-User-Id pass through with no actor attached; handlers
// that require authentication reject them.
func IdentityMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-User-Id"))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			actor := Actor{
				ID:       id,
				Username: strings.TrimSpace(r.Header.Get("X-User-Name")),
				Role:     Role(strings.TrimSpace(r.Header.Get("X-User-Role"))),
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// JWTIdentityConfig configures the JWT-based identity middleware.
type JWTIdentityConfig struct {
	// RoleClaim is the JWT claim containing the actor's role.
	// Supports dot-notation for nested claims. Default: "role".
	RoleClaim string

	// PublicKeyPath is the path to the PEM-encoded RSA public key for RS256
	// verification. If empty, tokens are parsed but NOT verified (suitable
	// only behind a trusted proxy).
	PublicKeyPath string

	// Issuer is the expected token issuer. If empty, issuer is not validated.
	Issuer string

	// Audience is the expected token audience. If empty, audience is not validated.
	Audience string

	// Logger for diagnostics. If nil, uses slog.Default().
	Logger *slog.Logger
}

// JWTIdentityMiddleware returns middleware that extracts the Actor from a
// Bearer token. The subject claim supplies the actor ID, preferred_username
// the display name, and cfg.RoleClaim the role. Missing or invalid tokens
// pass through with no actor attached (deny happens at the handler).
func JWTIdentityMiddleware(cfg JWTIdentityConfig) (func(http.Handler) http.Handler, error) {
	if cfg.RoleClaim == "" {
		cfg.RoleClaim = "role"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var publicKey *rsa.PublicKey
	if cfg.PublicKeyPath != "" {
		keyData, err := os.ReadFile(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read JWT public key from %s: %w", cfg.PublicKeyPath, err)
		}
		block, _ := pem.Decode(keyData)
		if block == nil {
			return nil, fmt.Errorf("decode PEM block from %s", cfg.PublicKeyPath)
		}
		parsedKey, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse public key: %w", err)
		}
		rsaKey, ok := parsedKey.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("public key is not RSA (got %T)", parsedKey)
		}
		publicKey = rsaKey
		cfg.Logger.Info("JWT identity: using RS256 verification", "keyPath", cfg.PublicKeyPath)
	} else {
		cfg.Logger.Warn("JWT identity: no public key configured, tokens parsed without verification (trusted proxy mode)")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parseJWTClaims(token, publicKey, cfg)
			if err != nil {
				cfg.Logger.Debug("JWT parse failed, request proceeds unauthenticated", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			actor := actorFromClaims(claims, cfg.RoleClaim)
			if !actor.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}, nil
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// parseJWTClaims parses and optionally verifies a JWT token.
func parseJWTClaims(tokenString string, publicKey *rsa.PublicKey, cfg JWTIdentityConfig) (jwt.MapClaims, error) {
	parserOpts := []jwt.ParserOption{}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(cfg.Audience))
	}

	var token *jwt.Token
	var err error

	if publicKey != nil {
		token, err = jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return publicKey, nil
		}, parserOpts...)
	} else {
		parser := jwt.NewParser(parserOpts...)
		token, _, err = parser.ParseUnverified(tokenString, jwt.MapClaims{})
	}

	if err != nil {
		return nil, fmt.Errorf("JWT parse error: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	return claims, nil
}

// actorFromClaims builds an Actor from JWT claims. The role claim supports
// dot-notation for nested claims.
func actorFromClaims(claims jwt.MapClaims, roleClaim string) Actor {
	actor := Actor{}
	if sub, ok := claims["sub"].(string); ok {
		actor.ID = sub
	}
	if name, ok := claims["preferred_username"].(string); ok {
		actor.Username = name
	}

	parts := strings.Split(roleClaim, ".")
	var current interface{} = map[string]interface{}(claims)
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return actor
		}
		current, ok = m[part]
		if !ok {
			return actor
		}
	}
	if roleVal, ok := current.(string); ok {
		actor.Role = Role(roleVal)
	}
	return actor
}
