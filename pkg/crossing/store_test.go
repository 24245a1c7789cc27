package crossing

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store := NewStore(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestStoreCRUD(t *testing.T) {
	store := newTestStore(t)

	rec := &Record{
		ID:        "xing-1",
		Name:      "Perm-Sortirovochnaya km 12",
		Latitude:  58.01,
		Longitude: 56.25,
	}
	require.NoError(t, store.Create(rec))

	got, err := store.Get("xing-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Name, got.Name)
	assert.Equal(t, rec.Latitude, got.Latitude)

	got.Name = "Perm-Sortirovochnaya km 13"
	got.Description = "relocated"
	require.NoError(t, store.Update(got))

	got, err = store.Get("xing-1")
	require.NoError(t, err)
	assert.Equal(t, "Perm-Sortirovochnaya km 13", got.Name)
	assert.Equal(t, "relocated", got.Description)

	require.NoError(t, store.Delete("xing-1"))
	got, err = store.Get("xing-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, store.Update(&Record{ID: "nope", Name: "x"}), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, store.Delete("nope"), gorm.ErrRecordNotFound)
}

func TestStoreListOrdered(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Create(&Record{ID: "b", Name: "Berezniki km 4"}))
	require.NoError(t, store.Create(&Record{ID: "a", Name: "Alnash km 9"}))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Alnash km 9", records[0].Name)
}

func TestStoreUpsertIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Upsert(&Record{ID: "xing-1", Name: "old name", Latitude: 1}))
	require.NoError(t, store.Upsert(&Record{ID: "xing-1", Name: "new name", Latitude: 2}))

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "new name", records[0].Name)
	assert.Equal(t, 2.0, records[0].Latitude)
}
