package export

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pavel195/rjd-project-web-portal/pkg/closure"
	"github.com/pavel195/rjd-project-web-portal/pkg/crossing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, crossing.NewStore(db).AutoMigrate())
	require.NoError(t, closure.NewStore(db).AutoMigrate())
	return db
}

func seedClosure(t *testing.T, db *gorm.DB, id, crossingID string, status closure.Status, start time.Time) {
	t.Helper()
	rec := &closure.Record{
		ID:         id,
		CrossingID: crossingID,
		CreatedBy:  "op-1",
		StartDate:  start,
		EndDate:    start.Add(4 * time.Hour),
		Reason:     "track maintenance",
		Status:     status,
	}
	require.NoError(t, closure.NewStore(db).Create(rec))
}

func TestExportApprovedOnly(t *testing.T) {
	db := newTestDB(t)

	crossings := crossing.NewStore(db)
	require.NoError(t, crossings.Create(&crossing.Record{
		ID:        "xing-1",
		Name:      "Perm-Sortirovochnaya km 12",
		Latitude:  58.01,
		Longitude: 56.25,
	}))

	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	seedClosure(t, db, "cl-draft", "xing-1", closure.StatusDraft, base)
	seedClosure(t, db, "cl-pending", "xing-1", closure.StatusPending, base)
	seedClosure(t, db, "cl-rejected", "xing-1", closure.StatusRejected, base)
	seedClosure(t, db, "cl-approved", "xing-1", closure.StatusApproved, base)

	entries, err := NewProjector(db).ExportApproved()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "cl-approved", entry.ID)
	assert.Equal(t, "Perm-Sortirovochnaya km 12", entry.Name)
	assert.Equal(t, 58.01, entry.Latitude)
	assert.Equal(t, 56.25, entry.Longitude)
	assert.Equal(t, base.Format(time.RFC3339), entry.StartDate)
	assert.Equal(t, base.Add(4*time.Hour).Format(time.RFC3339), entry.EndDate)
	assert.Equal(t, "track maintenance", entry.Reason)
}

func TestExportOrderedByStartDate(t *testing.T) {
	db := newTestDB(t)

	crossings := crossing.NewStore(db)
	require.NoError(t, crossings.Create(&crossing.Record{ID: "xing-1", Name: "A"}))

	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	seedClosure(t, db, "cl-later", "xing-1", closure.StatusApproved, base.Add(48*time.Hour))
	seedClosure(t, db, "cl-sooner", "xing-1", closure.StatusApproved, base)

	entries, err := NewProjector(db).ExportApproved()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "cl-sooner", entries[0].ID)
	assert.Equal(t, "cl-later", entries[1].ID)
}

func TestExportEmpty(t *testing.T) {
	db := newTestDB(t)

	entries, err := NewProjector(db).ExportApproved()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
