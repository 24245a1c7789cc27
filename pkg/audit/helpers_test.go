package audit

import (
	"net/http"
	"testing"
)

func TestExtractClosureID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/closures/", ""},
		{"/api/closures/cl-1/", "cl-1"},
		{"/api/closures/cl-1/approve_gibdd/", "cl-1"},
		{"/api/closures/cl-1/documents/doc-2/", "cl-1"},
		{"/api/crossings/xing-1/", ""},
	}

	for _, tt := range tests {
		if got := extractClosureID(tt.path); got != tt.want {
			t.Errorf("extractClosureID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExtractAction(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/closures/", "created"},
		{http.MethodPut, "/api/closures/cl-1/", "updated"},
		{http.MethodDelete, "/api/closures/cl-1/", "deleted"},
		{http.MethodPost, "/api/closures/cl-1/sign_closure/", "sign_closure"},
		{http.MethodPost, "/api/closures/cl-1/send_for_approval/", "send_for_approval"},
		{http.MethodPost, "/api/closures/cl-1/approve_administration/", "approve_administration"},
		{http.MethodPost, "/api/closures/cl-1/approve_gibdd/", "approve_gibdd"},
		{http.MethodPost, "/api/closures/cl-1/reject/", "reject"},
		{http.MethodPost, "/api/closures/cl-1/comments/", "comment_added"},
		{http.MethodPost, "/api/closures/cl-1/documents/", "document_added"},
		{http.MethodDelete, "/api/closures/cl-1/documents/doc-2/", "document_deleted"},
	}

	for _, tt := range tests {
		if got := extractAction(tt.method, tt.path); got != tt.want {
			t.Errorf("extractAction(%s, %q) = %q, want %q", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestIsClosureEndpoint(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/closures/", true},
		{http.MethodDelete, "/api/closures/cl-1/", true},
		{http.MethodGet, "/api/closures/", false},
		{http.MethodPost, "/api/crossings/", false},
		{http.MethodGet, "/api/export/yandex/", false},
	}

	for _, tt := range tests {
		if got := isClosureEndpoint(tt.method, tt.path); got != tt.want {
			t.Errorf("isClosureEndpoint(%s, %q) = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestOutcomeFromStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "success"},
		{201, "success"},
		{204, "success"},
		{400, "failure"},
		{403, "denied"},
		{409, "failure"},
		{500, "failure"},
	}

	for _, tt := range tests {
		if got := outcomeFromStatus(tt.code); got != tt.want {
			t.Errorf("outcomeFromStatus(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
