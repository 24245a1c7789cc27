package audit

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ListFilter narrows an audit event listing.
type ListFilter struct {
	ClosureID string
	Actor     string
	Action    string
	Outcome   string
}

// Store provides persistence for audit events.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the audit_events table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&EventRecord{}); err != nil {
		return fmt.Errorf("auto-migrate audit_events: %w", err)
	}
	return nil
}

// Append inserts an audit event. Events are never updated after insert.
func (s *Store) Append(rec *EventRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Get retrieves an event by ID. Returns nil, nil if no record exists.
func (s *Store) Get(id string) (*EventRecord, error) {
	var rec EventRecord
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit event: %w", err)
	}
	return &rec, nil
}

// List returns matching events newest first, capped at limit.
func (s *Store) List(filter ListFilter, limit int) ([]EventRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	query := s.db.Order("created_at DESC").Limit(limit)
	if filter.ClosureID != "" {
		query = query.Where("closure_id = ?", filter.ClosureID)
	}
	if filter.Actor != "" {
		query = query.Where("actor = ?", filter.Actor)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}

	var records []EventRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return records, nil
}

// DeleteOlderThan removes events created before the cutoff and returns
// the number deleted.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff).Delete(&EventRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete old audit events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
