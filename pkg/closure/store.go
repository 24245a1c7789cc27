package closure

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store provides persistence for closures, comments, and documents.
// Status transitions use status-guarded updates inside transactions so
// that concurrent operations on the same closure serialize at the row
// level; a guard that matches zero rows means the closure was not in the
// required state at commit time.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the closure tables.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("auto-migrate closures: %w", err)
	}
	if err := s.db.AutoMigrate(&CommentRecord{}); err != nil {
		return fmt.Errorf("auto-migrate closure_comments: %w", err)
	}
	if err := s.db.AutoMigrate(&DocumentRecord{}); err != nil {
		return fmt.Errorf("auto-migrate closure_documents: %w", err)
	}
	return nil
}

// Create inserts a new closure request.
func (s *Store) Create(rec *Record) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("create closure: %w", err)
	}
	return nil
}

// Get retrieves a closure by ID. Returns nil, nil if no record exists.
func (s *Store) Get(id string) (*Record, error) {
	var rec Record
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get closure: %w", err)
	}
	return &rec, nil
}

// List returns closures ordered newest first, optionally filtered by status.
func (s *Store) List(status Status) ([]Record, error) {
	query := s.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var records []Record
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list closures: %w", err)
	}
	return records, nil
}

// UpdateDraft saves operator-editable fields. The guard restricts the write
// to draft closures; a stale caller gets zero rows affected.
func (s *Store) UpdateDraft(id string, crossingID string, start, end time.Time, reason string) (bool, error) {
	result := s.db.Model(&Record{}).
		Where("id = ? AND status = ?", id, StatusDraft).
		Updates(map[string]any{
			"crossing_id": crossingID,
			"start_date":  start,
			"end_date":    end,
			"reason":      reason,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update closure: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a closure together with its comments and documents.
// The closure exclusively owns its attachments, so destruction is explicit
// and transactional rather than relying on database-level cascades.
func (s *Store) Delete(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("closure_id = ?", id).Delete(&CommentRecord{}).Error; err != nil {
			return fmt.Errorf("delete closure comments: %w", err)
		}
		if err := tx.Where("closure_id = ?", id).Delete(&DocumentRecord{}).Error; err != nil {
			return fmt.Errorf("delete closure documents: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&Record{})
		if result.Error != nil {
			return fmt.Errorf("delete closure: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return err
}

// SetSignature records the digital signature on a draft closure. The guard
// only matches an unsigned draft, so a signature can never be overwritten.
func (s *Store) SetSignature(id, signature string, signedAt time.Time) (bool, error) {
	result := s.db.Model(&Record{}).
		Where("id = ? AND status = ? AND (digital_signature IS NULL OR digital_signature = '')", id, StatusDraft).
		Updates(map[string]any{
			"digital_signature": signature,
			"signature_date":    signedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("set closure signature: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Submit transitions a draft closure to pending.
func (s *Store) Submit(id string) (bool, error) {
	result := s.db.Model(&Record{}).
		Where("id = ? AND status = ?", id, StatusDraft).
		Update("status", StatusPending)
	if result.Error != nil {
		return false, fmt.Errorf("submit closure: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Reject transitions a pending closure to rejected.
func (s *Store) Reject(id string) (bool, error) {
	result := s.db.Model(&Record{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", StatusRejected)
	if result.Error != nil {
		return false, fmt.Errorf("reject closure: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// AddComment inserts a comment.
func (s *Store) AddComment(rec *CommentRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("add closure comment: %w", err)
	}
	return nil
}

// ListComments returns a closure's comments, newest first.
func (s *Store) ListComments(closureID string) ([]CommentRecord, error) {
	var records []CommentRecord
	if err := s.db.Where("closure_id = ?", closureID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list closure comments: %w", err)
	}
	return records, nil
}

// RecentComments returns the latest comments across all closures.
func (s *Store) RecentComments(limit int) ([]CommentRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	var records []CommentRecord
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list recent comments: %w", err)
	}
	return records, nil
}

// AddDocument inserts a document.
func (s *Store) AddDocument(rec *DocumentRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("add closure document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID. Returns nil, nil if no record exists.
func (s *Store) GetDocument(id string) (*DocumentRecord, error) {
	var rec DocumentRecord
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get closure document: %w", err)
	}
	return &rec, nil
}

// ListDocuments returns a closure's documents, newest first.
func (s *Store) ListDocuments(closureID string) ([]DocumentRecord, error) {
	var records []DocumentRecord
	if err := s.db.Where("closure_id = ?", closureID).Order("uploaded_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list closure documents: %w", err)
	}
	return records, nil
}

// DeleteDocument removes a document by ID.
func (s *Store) DeleteDocument(id string) error {
	result := s.db.Where("id = ?", id).Delete(&DocumentRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete closure document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
