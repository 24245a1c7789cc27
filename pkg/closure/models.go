// Package closure implements the closure request core: the lifecycle state
// machine, the dual-approval gate, the signature gate, and the comment and
// document attachment rules. All operations take the acting rbac.Actor
// explicitly; there is no ambient current-user state.
package closure

import "time"

// DocumentType is the closed set of closure document type tags.
type DocumentType string

const (
	DocRoadScheme DocumentType = "road_scheme"
	DocApproval   DocumentType = "approval"
	DocContract   DocumentType = "contract"
	DocSupporting DocumentType = "supporting"
	DocOther      DocumentType = "other"
)

// Valid reports whether the document type belongs to the closed set.
func (d DocumentType) Valid() bool {
	switch d {
	case DocRoadScheme, DocApproval, DocContract, DocSupporting, DocOther:
		return true
	}
	return false
}

// Record is the GORM model for a closure request.
//
// Status derives from the approval flags and explicit transition events; it
// is never written directly from client input. The approval flags are
// monotonic: once true they are not reset by normal operation.
type Record struct {
	ID               string     `gorm:"primaryKey;column:id;type:varchar(36)"`
	CrossingID       string     `gorm:"column:crossing_id;index:idx_closure_crossing;not null"`
	CreatedBy        string     `gorm:"column:created_by;index:idx_closure_creator;not null"`
	CreatedByName    string     `gorm:"column:created_by_name"`
	StartDate        time.Time  `gorm:"column:start_date;not null"`
	EndDate          time.Time  `gorm:"column:end_date;not null"`
	Reason           string     `gorm:"column:reason;not null"`
	Status           Status     `gorm:"column:status;index:idx_closure_status;not null;default:draft"`
	AdminApproved    bool       `gorm:"column:admin_approved;not null;default:false"`
	GibddApproved    bool       `gorm:"column:gibdd_approved;not null;default:false"`
	DigitalSignature *string    `gorm:"column:digital_signature"`
	SignatureDate    *time.Time `gorm:"column:signature_date"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (Record) TableName() string { return "closures" }

// Signed reports whether the closure carries a digital signature.
func (r *Record) Signed() bool {
	return r.DigitalSignature != nil && *r.DigitalSignature != ""
}

// CommentRecord is the GORM model for a closure comment. Comments are
// append-only and immutable once created; they never change the closure's
// status. They are destroyed together with their closure.
type CommentRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	ClosureID  string    `gorm:"column:closure_id;index:idx_comment_closure;not null"`
	AuthorID   string    `gorm:"column:author_id;not null"`
	AuthorName string    `gorm:"column:author_name"`
	AuthorRole string    `gorm:"column:author_role"`
	Text       string    `gorm:"column:text;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the GORM table name.
func (CommentRecord) TableName() string { return "closure_comments" }

// DocumentRecord is the GORM model for a closure document. The file field
// is an opaque blob-store reference; the core never interprets file bytes.
// Documents are destroyed together with their closure.
type DocumentRecord struct {
	ID             string       `gorm:"primaryKey;column:id;type:varchar(36)"`
	ClosureID      string       `gorm:"column:closure_id;index:idx_document_closure;not null"`
	Title          string       `gorm:"column:title;not null"`
	File           string       `gorm:"column:file;not null"`
	DocumentType   DocumentType `gorm:"column:document_type;not null;default:other"`
	UploadedBy     string       `gorm:"column:uploaded_by;not null"`
	UploadedByName string       `gorm:"column:uploaded_by_name"`
	UploadedAt     time.Time    `gorm:"column:uploaded_at;autoCreateTime"`
}

// TableName returns the GORM table name.
func (DocumentRecord) TableName() string { return "closure_documents" }
