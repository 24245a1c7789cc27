// Package audit records an append-only trail of closure actions. Every
// mutating request against the closure API produces one event with the
// acting user, the action taken, and the outcome. Events are read-only
// once written; a retention worker prunes old ones.
package audit

import "time"

// EventRecord is the GORM model for one audit event.
type EventRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	ClosureID  string    `gorm:"column:closure_id;index:idx_audit_closure"`
	Actor      string    `gorm:"column:actor;index:idx_audit_actor;not null"`
	ActorRole  string    `gorm:"column:actor_role"`
	Action     string    `gorm:"column:action;index:idx_audit_action;not null"`
	Outcome    string    `gorm:"column:outcome;not null"`
	StatusCode int       `gorm:"column:status_code"`
	Method     string    `gorm:"column:method"`
	Path       string    `gorm:"column:path"`
	Duration   string    `gorm:"column:duration"`
	CreatedAt  time.Time `gorm:"column:created_at;index:idx_audit_created;autoCreateTime"`
}

// TableName returns the GORM table name.
func (EventRecord) TableName() string { return "audit_events" }
