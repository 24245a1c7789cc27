// Package crossing provides the railway crossing registry: static reference
// data describing physical crossings. Crossings are referenced by closure
// requests and never mutated by the closure core.
package crossing

import "time"

// Record is the GORM model for a railway crossing.
type Record struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name        string    `gorm:"column:name;not null"`
	Latitude    float64   `gorm:"column:latitude;not null"`
	Longitude   float64   `gorm:"column:longitude;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the GORM table name.
func (Record) TableName() string { return "railway_crossings" }

// Crossing is the API-facing crossing type.
type Crossing struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
}

// recordToCrossing converts a record to the API type.
func recordToCrossing(rec *Record) Crossing {
	return Crossing{
		ID:          rec.ID,
		Name:        rec.Name,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		Description: rec.Description,
	}
}
