// Package export produces the public feed of approved closures for map
// providers. The projection is read-only: it joins approved closures with
// their crossings and never changes state.
package export

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pavel195/rjd-project-web-portal/pkg/closure"
	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
)

// Entry is one record of the public export feed. The field names and types
// are the contract with the map provider; they must not change.
type Entry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    string  `json:"reason"`
}

// Projector builds the approved-closures feed.
type Projector struct {
	db *gorm.DB
}

// NewProjector creates a projector on the given database.
func NewProjector(db *gorm.DB) *Projector {
	return &Projector{db: db}
}

// exportRow is the join shape read from the database.
type exportRow struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// ExportApproved returns one entry per approved closure, joined with its
// crossing. Draft, pending, and rejected closures never appear. The feed
// reflects the latest committed state on every call.
func (p *Projector) ExportApproved() ([]Entry, error) {
	crossings := crossing.Record{}.TableName()
	closures := closure.Record{}.TableName()

	var rows []exportRow
	err := p.db.Model(&closure.Record{}).
		Select(fmt.Sprintf(
			"%[1]s.id, %[2]s.name, %[2]s.latitude, %[2]s.longitude, %[1]s.start_date, %[1]s.end_date, %[1]s.reason",
			closures, crossings)).
		Joins(fmt.Sprintf("JOIN %[2]s ON %[2]s.id = %[1]s.crossing_id", closures, crossings)).
		Where(closures+".status = ?", closure.StatusApproved).
		Order(closures + ".start_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("export approved closures: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{
			ID:        row.ID,
			Name:      row.Name,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			StartDate: row.StartDate.Format(time.RFC3339),
			EndDate:   row.EndDate.Format(time.RFC3339),
			Reason:    row.Reason,
		}
	}
	return entries, nil
}
