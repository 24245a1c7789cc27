package closure

import (
	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// SignatureGate enforces the signing precondition: only the closure's
// creator may sign, only while the closure is a draft, and only with a
// non-empty signature. This is the one place identity binding (operator
// equals creator) is checked, distinct from role-only checks elsewhere.
type SignatureGate struct{}

// NewSignatureGate creates a signature gate.
func NewSignatureGate() *SignatureGate {
	return &SignatureGate{}
}

// Authorize validates a signing attempt against the closure's current
// state. Returns nil when the attempt may proceed.
func (g *SignatureGate) Authorize(rec *Record, actor rbac.Actor, signature string) error {
	if rec.CreatedBy != actor.ID {
		return Forbidden("only the closure's creator may sign it")
	}
	if rec.Status != StatusDraft {
		return InvalidState("closure is %s; only drafts can be signed", rec.Status)
	}
	if rec.Signed() {
		return InvalidState("closure is already signed; signatures are immutable")
	}
	if signature == "" {
		return Validation("digital signature must not be empty")
	}
	return nil
}
