package closure

import (
	"time"

	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
)

// UserRef is the API-facing reference to an actor.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Closure is the API-facing closure request type. Field names follow the
// public API contract consumed by the portal frontend.
type Closure struct {
	ID                    string             `json:"id"`
	RailwayCrossing       string             `json:"railway_crossing"`
	RailwayCrossingDetail *crossing.Crossing `json:"railway_crossing_detail,omitempty"`
	CreatedBy             UserRef            `json:"created_by"`
	StartDate             string             `json:"start_date"`
	EndDate               string             `json:"end_date"`
	Reason                string             `json:"reason"`
	Status                Status             `json:"status"`
	StatusDisplay         string             `json:"status_display"`
	CreatedAt             string             `json:"created_at"`
	UpdatedAt             string             `json:"updated_at"`
	AdminApproved         bool               `json:"admin_approved"`
	GibddApproved         bool               `json:"gibdd_approved"`
	DigitalSignature      string             `json:"digital_signature,omitempty"`
	SignatureDate         string             `json:"signature_date,omitempty"`
	Comments              []Comment          `json:"comments,omitempty"`
}

// Comment is the API-facing closure comment type.
type Comment struct {
	ID        string  `json:"id"`
	User      UserRef `json:"user"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"created_at"`
}

// Activity is one entry of the recent-activity feed: a comment together
// with the closure it belongs to.
type Activity struct {
	ClosureID string  `json:"closure"`
	Comment   Comment `json:"comment"`
}

// Document is the API-facing closure document type.
type Document struct {
	ID           string       `json:"id"`
	ClosureID    string       `json:"closure"`
	Title        string       `json:"title"`
	File         string       `json:"file"`
	DocumentType DocumentType `json:"document_type"`
	UploadedBy   UserRef      `json:"uploaded_by"`
	UploadedAt   string       `json:"uploaded_at"`
}

// recordToClosure converts a record to the API type. The crossing detail
// and comments are optional joins supplied by the caller.
func recordToClosure(rec *Record, xing *crossing.Record, comments []CommentRecord) Closure {
	c := Closure{
		ID:              rec.ID,
		RailwayCrossing: rec.CrossingID,
		CreatedBy: UserRef{
			ID:       rec.CreatedBy,
			Username: rec.CreatedByName,
		},
		StartDate:     rec.StartDate.Format(time.RFC3339),
		EndDate:       rec.EndDate.Format(time.RFC3339),
		Reason:        rec.Reason,
		Status:        rec.Status,
		StatusDisplay: rec.Status.DisplayName(),
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     rec.UpdatedAt.Format(time.RFC3339),
		AdminApproved: rec.AdminApproved,
		GibddApproved: rec.GibddApproved,
	}
	if rec.DigitalSignature != nil {
		c.DigitalSignature = *rec.DigitalSignature
	}
	if rec.SignatureDate != nil {
		c.SignatureDate = rec.SignatureDate.Format(time.RFC3339)
	}
	if xing != nil {
		detail := crossing.Crossing{
			ID:          xing.ID,
			Name:        xing.Name,
			Latitude:    xing.Latitude,
			Longitude:   xing.Longitude,
			Description: xing.Description,
		}
		c.RailwayCrossingDetail = &detail
	}
	if comments != nil {
		c.Comments = make([]Comment, len(comments))
		for i := range comments {
			c.Comments[i] = recordToComment(&comments[i])
		}
	}
	return c
}

// recordToComment converts a comment record to the API type.
func recordToComment(rec *CommentRecord) Comment {
	return Comment{
		ID: rec.ID,
		User: UserRef{
			ID:       rec.AuthorID,
			Username: rec.AuthorName,
			Role:     rec.AuthorRole,
		},
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
}

// recordToDocument converts a document record to the API type.
func recordToDocument(rec *DocumentRecord) Document {
	return Document{
		ID:           rec.ID,
		ClosureID:    rec.ClosureID,
		Title:        rec.Title,
		File:         rec.File,
		DocumentType: rec.DocumentType,
		UploadedBy: UserRef{
			ID:       rec.UploadedBy,
			Username: rec.UploadedByName,
		},
		UploadedAt: rec.UploadedAt.Format(time.RFC3339),
	}
}
