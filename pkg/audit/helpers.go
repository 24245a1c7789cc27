package audit

import (
	"net/http"
	"strings"
)

// extractClosureID extracts the closure ID from a closure API path.
// For paths like /api/closures/{id}/approve_gibdd/ it returns {id}.
// Returns "" for collection-level paths like /api/closures/.
func extractClosureID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p == "closures" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// extractAction maps a method and path to the audited action name.
// Lifecycle endpoints keep their path segment (sign_closure, reject, ...);
// plain resource methods map to create/update/delete.
func extractAction(method, path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	for _, p := range parts {
		switch p {
		case "sign_closure", "send_for_approval", "approve_administration",
			"approve_gibdd", "reject":
			return p
		}
	}

	last := ""
	if len(parts) > 0 {
		last = parts[len(parts)-1]
	}
	switch {
	case last == "comments":
		return "comment_added"
	case last == "documents" && method == http.MethodPost:
		return "document_added"
	case strings.Contains(path, "/documents/") && method == http.MethodDelete:
		return "document_deleted"
	}

	switch method {
	case http.MethodPost:
		return "created"
	case http.MethodPut:
		return "updated"
	case http.MethodDelete:
		return "deleted"
	}
	return strings.ToLower(method)
}

// isClosureEndpoint reports whether the request mutates the closure API.
// Reads are not audited.
func isClosureEndpoint(method, path string) bool {
	if method != http.MethodPost && method != http.MethodPut && method != http.MethodDelete {
		return false
	}
	return strings.HasPrefix(path, "/api/closures")
}
