package crossing

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store provides CRUD operations for railway crossings.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the crossings table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("auto-migrate railway_crossings: %w", err)
	}
	return nil
}

// Get retrieves a crossing by ID. Returns nil, nil if no record exists.
func (s *Store) Get(id string) (*Record, error) {
	var rec Record
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get crossing: %w", err)
	}
	return &rec, nil
}

// List returns all crossings ordered by name.
func (s *Store) List() ([]Record, error) {
	var records []Record
	if err := s.db.Order("name ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list crossings: %w", err)
	}
	return records, nil
}

// Create inserts a new crossing.
func (s *Store) Create(rec *Record) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("create crossing: %w", err)
	}
	return nil
}

// Update saves changes to an existing crossing.
func (s *Store) Update(rec *Record) error {
	result := s.db.Model(&Record{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"name":        rec.Name,
		"latitude":    rec.Latitude,
		"longitude":   rec.Longitude,
		"description": rec.Description,
	})
	if result.Error != nil {
		return fmt.Errorf("update crossing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a crossing by ID.
func (s *Store) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Record{})
	if result.Error != nil {
		return fmt.Errorf("delete crossing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Upsert creates or updates a crossing, resolving conflicts on the primary key.
// Used by the seed loader so re-applying a seed file is idempotent.
func (s *Store) Upsert(rec *Record) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "latitude", "longitude", "description", "updated_at",
		}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("upsert crossing: %w", err)
	}
	return nil
}
