package closure

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
	"github.com/pavel195/rjd-project-web-portal/pkg/rbac"
)

// Service implements the closure request operations. Every operation takes
// the acting Actor explicitly and consults the rbac capability table; the
// HTTP layer only translates errors, never decides authorization.
type Service struct {
	store       *Store
	crossings   *crossing.Store
	coordinator *ApprovalCoordinator
	gate        *SignatureGate
	machine     *StateMachine
	logger      *slog.Logger
}

// NewService creates a closure service.
func NewService(store *Store, crossings *crossing.Store, coordinator *ApprovalCoordinator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:       store,
		crossings:   crossings,
		coordinator: coordinator,
		gate:        NewSignatureGate(),
		machine:     NewStateMachine(),
		logger:      logger,
	}
}

// Create opens a new closure request in draft status. Only railway
// operators may create; the time window must be well formed and the
// crossing must exist.
func (s *Service) Create(actor rbac.Actor, crossingID string, start, end time.Time, reason string) (*Record, error) {
	if !rbac.HasCapability(actor.Role, rbac.CapCreateClosure) {
		return nil, Forbidden("role %s cannot create closure requests", actor.Role)
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, Validation("reason must not be empty")
	}

	xing, err := s.crossings.Get(crossingID)
	if err != nil {
		return nil, err
	}
	if xing == nil {
		return nil, NotFound("crossing %s not found", crossingID)
	}

	rec := &Record{
		ID:            uuid.New().String(),
		CrossingID:    crossingID,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Username,
		StartDate:     start,
		EndDate:       end,
		Reason:        reason,
		Status:        StatusDraft,
	}
	if err := s.store.Create(rec); err != nil {
		return nil, err
	}

	s.logger.Info("closure created", "closure", rec.ID, "crossing", crossingID, "actor", actor.ID)
	return rec, nil
}

// Get retrieves a closure by ID.
func (s *Service) Get(id string) (*Record, error) {
	rec, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, NotFound("closure %s not found", id)
	}
	return rec, nil
}

// List returns closures, optionally filtered by status.
func (s *Service) List(status Status) ([]Record, error) {
	if status != "" && status != StatusDraft && status != StatusPending &&
		status != StatusApproved && status != StatusRejected {
		return nil, Validation("unknown status filter %q", status)
	}
	return s.store.List(status)
}

// UpdateDraft edits an existing draft. Only the creating operator may edit,
// and only while the closure is a draft.
func (s *Service) UpdateDraft(actor rbac.Actor, id, crossingID string, start, end time.Time, reason string) (*Record, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnDraft(rec, actor); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, Validation("reason must not be empty")
	}

	xing, err := s.crossings.Get(crossingID)
	if err != nil {
		return nil, err
	}
	if xing == nil {
		return nil, NotFound("crossing %s not found", crossingID)
	}

	ok, err := s.store.UpdateDraft(id, crossingID, start, end, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, InvalidState("closure %s is no longer a draft", id)
	}
	return s.Get(id)
}

// Delete removes a draft together with its comments and documents. Only the
// creating operator may delete, and only while the closure is a draft.
func (s *Service) Delete(actor rbac.Actor, id string) error {
	rec, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.requireOwnDraft(rec, actor); err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.logger.Info("closure deleted", "closure", id, "actor", actor.ID)
	return nil
}

// Sign records the creator's digital signature on a draft closure. The
// signature is immutable once set.
func (s *Service) Sign(actor rbac.Actor, id, signature string) (*Record, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(rec, actor, signature); err != nil {
		return nil, err
	}

	ok, err := s.store.SetSignature(id, signature, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race: the closure left draft or was signed concurrently.
		return nil, InvalidState("closure %s can no longer be signed", id)
	}

	s.logger.Info("closure signed", "closure", id, "actor", actor.ID)
	return s.Get(id)
}

// SubmitForApproval transitions a draft to pending. Only the creating
// operator may submit, and only after signing.
func (s *Service) SubmitForApproval(actor rbac.Actor, id string) (*Record, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnDraft(rec, actor); err != nil {
		return nil, err
	}
	if !rec.Signed() {
		return nil, Validation("closure must be signed before submission")
	}
	if err := s.machine.ValidateTransition(rec.Status, StatusPending); err != nil {
		return nil, err
	}

	ok, err := s.store.Submit(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, InvalidState("closure %s is no longer a draft", id)
	}

	s.logger.Info("closure submitted for approval", "closure", id, "actor", actor.ID)
	return s.Get(id)
}

// ApproveAsAdministration records the regional administration's approval
// vote. The closure becomes approved when traffic police already voted.
func (s *Service) ApproveAsAdministration(actor rbac.Actor, id string) (*Record, error) {
	return s.approve(actor, id, rbac.CapApproveAsAdministration, AuthorityAdministration)
}

// ApproveAsTrafficPolice records the traffic police approval vote. The
// closure becomes approved when the administration already voted.
func (s *Service) ApproveAsTrafficPolice(actor rbac.Actor, id string) (*Record, error) {
	return s.approve(actor, id, rbac.CapApproveAsTrafficPolice, AuthorityTrafficPolice)
}

func (s *Service) approve(actor rbac.Actor, id string, cap rbac.Capability, authority Authority) (*Record, error) {
	if !rbac.HasCapability(actor.Role, cap) {
		return nil, Forbidden("role %s cannot approve as %s", actor.Role, authority)
	}
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	voted, approved, err := s.coordinator.Apply(id, authority)
	if err != nil {
		return nil, err
	}
	if !voted {
		// rec.Status is the pre-vote view; good enough for the message.
		return nil, InvalidState("closure is %s; only pending closures can be approved", rec.Status)
	}

	if approved {
		s.logger.Info("closure approved", "closure", id, "authority", authority, "actor", actor.ID)
	} else {
		s.logger.Info("approval vote recorded", "closure", id, "authority", authority, "actor", actor.ID)
	}
	return s.Get(id)
}

// Reject transitions a pending closure to rejected. Either approving
// authority may reject.
func (s *Service) Reject(actor rbac.Actor, id string) (*Record, error) {
	if !rbac.HasCapability(actor.Role, rbac.CapRejectPending) {
		return nil, Forbidden("role %s cannot reject closure requests", actor.Role)
	}
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	ok, err := s.store.Reject(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, InvalidState("closure is %s; only pending closures can be rejected", rec.Status)
	}

	s.logger.Info("closure rejected", "closure", id, "actor", actor.ID)
	return s.Get(id)
}

// AddComment attaches a comment to a closure. Any authenticated actor may
// comment regardless of the closure's status; comments are immutable.
func (s *Service) AddComment(actor rbac.Actor, closureID, text string) (*CommentRecord, error) {
	if text == "" {
		return nil, Validation("comment text must not be empty")
	}
	if _, err := s.Get(closureID); err != nil {
		return nil, err
	}

	rec := &CommentRecord{
		ID:         uuid.New().String(),
		ClosureID:  closureID,
		AuthorID:   actor.ID,
		AuthorName: actor.Username,
		AuthorRole: string(actor.Role),
		Text:       text,
	}
	if err := s.store.AddComment(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListComments returns a closure's comments, newest first.
func (s *Service) ListComments(closureID string) ([]CommentRecord, error) {
	if _, err := s.Get(closureID); err != nil {
		return nil, err
	}
	return s.store.ListComments(closureID)
}

// RecentActivity returns the latest comments across all closures.
func (s *Service) RecentActivity(limit int) ([]CommentRecord, error) {
	return s.store.RecentComments(limit)
}

// AddDocument attaches a document to a closure. A railway operator may only
// attach to their own drafts; the approving authorities are not restricted
// by closure state.
func (s *Service) AddDocument(actor rbac.Actor, closureID, title, file string, docType DocumentType) (*DocumentRecord, error) {
	if title == "" {
		return nil, Validation("document title must not be empty")
	}
	if file == "" {
		return nil, Validation("document file reference must not be empty")
	}
	if !docType.Valid() {
		return nil, Validation("unknown document type %q", docType)
	}

	rec, err := s.Get(closureID)
	if err != nil {
		return nil, err
	}

	if rbac.HasCapability(actor.Role, rbac.CapEditOwnDraftClosure) {
		if rec.CreatedBy != actor.ID {
			return nil, Forbidden("operators may only attach documents to their own closures")
		}
		if rec.Status != StatusDraft {
			return nil, InvalidState("closure is %s; documents can only be added to drafts", rec.Status)
		}
	}

	doc := &DocumentRecord{
		ID:             uuid.New().String(),
		ClosureID:      closureID,
		Title:          title,
		File:           file,
		DocumentType:   docType,
		UploadedBy:     actor.ID,
		UploadedByName: actor.Username,
	}
	if err := s.store.AddDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns a closure's documents, newest first.
func (s *Service) ListDocuments(closureID string) ([]DocumentRecord, error) {
	if _, err := s.Get(closureID); err != nil {
		return nil, err
	}
	return s.store.ListDocuments(closureID)
}

// DeleteDocument removes a document. Only the uploading actor may delete.
func (s *Service) DeleteDocument(actor rbac.Actor, docID string) error {
	doc, err := s.store.GetDocument(docID)
	if err != nil {
		return err
	}
	if doc == nil {
		return NotFound("document %s not found", docID)
	}
	if doc.UploadedBy != actor.ID {
		return Forbidden("only the uploader may delete a document")
	}
	return s.store.DeleteDocument(docID)
}

// requireOwnDraft checks creator ownership and draft status for the
// operator-editable operations.
func (s *Service) requireOwnDraft(rec *Record, actor rbac.Actor) error {
	if !rbac.HasCapability(actor.Role, rbac.CapEditOwnDraftClosure) {
		return Forbidden("role %s cannot edit closure requests", actor.Role)
	}
	if rec.CreatedBy != actor.ID {
		return Forbidden("only the closure's creator may modify it")
	}
	if rec.Status != StatusDraft {
		return InvalidState("closure is %s; only drafts can be modified", rec.Status)
	}
	return nil
}

// validateWindow checks the closure time window.
func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return Validation("start_date and end_date are required")
	}
	if !end.After(start) {
		return Validation("end_date must be after start_date")
	}
	return nil
}
