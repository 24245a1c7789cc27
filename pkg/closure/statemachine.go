package closure

// Status is the closure request lifecycle status.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// DisplayName returns the human-readable status label.
func (s Status) DisplayName() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPending:
		return "Pending Approval"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// Terminal reports whether no further transition leaves this status.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// TransitionRule defines an allowed status transition.
type TransitionRule struct {
	From Status
	To   Status
}

// DefaultTransitions defines the allowed closure status transitions.
// Approved and rejected are terminal branches.
var DefaultTransitions = []TransitionRule{
	{From: StatusDraft, To: StatusPending},
	{From: StatusPending, To: StatusApproved},
	{From: StatusPending, To: StatusRejected},
}

// StateMachine validates closure status transitions.
type StateMachine struct {
	transitions []TransitionRule
}

// NewStateMachine creates a machine with the default rules.
func NewStateMachine() *StateMachine {
	return &StateMachine{transitions: DefaultTransitions}
}

// ValidateTransition checks if a transition from->to is allowed.
// Returns nil if allowed, an InvalidState error if not.
func (m *StateMachine) ValidateTransition(from, to Status) error {
	for _, t := range m.transitions {
		if t.From == from && t.To == to {
			return nil
		}
	}
	if from.Terminal() {
		return InvalidState("closure is %s; no further transitions are possible", from)
	}
	return InvalidState("no transition defined from %s to %s", from, to)
}

// AllowedTransitions returns all valid target statuses from the given status.
func (m *StateMachine) AllowedTransitions(from Status) []Status {
	var allowed []Status
	for _, t := range m.transitions {
		if t.From == from {
			allowed = append(allowed, t.To)
		}
	}
	return allowed
}
