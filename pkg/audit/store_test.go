package audit

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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

func appendEvent(t *testing.T, store *Store, closureID, actor, action, outcome string, createdAt time.Time) *EventRecord {
	t.Helper()
	rec := &EventRecord{
		ID:        uuid.New().String(),
		ClosureID: closureID,
		Actor:     actor,
		Action:    action,
		Outcome:   outcome,
		CreatedAt: createdAt,
	}
	require.NoError(t, store.Append(rec))
	return rec
}

func TestStoreAppendAndGet(t *testing.T) {
	store := newTestStore(t)

	rec := appendEvent(t, store, "cl-1", "op-1", "created", "success", time.Now())

	got, err := store.Get(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "created", got.Action)

	missing, err := store.Get("ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStoreListFilters(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	appendEvent(t, store, "cl-1", "op-1", "created", "success", now)
	appendEvent(t, store, "cl-1", "adm-1", "approve_administration", "success", now)
	appendEvent(t, store, "cl-2", "op-1", "created", "success", now)
	appendEvent(t, store, "cl-2", "op-2", "sign_closure", "denied", now)

	byClosure, err := store.List(ListFilter{ClosureID: "cl-1"}, 0)
	require.NoError(t, err)
	assert.Len(t, byClosure, 2)

	byActor, err := store.List(ListFilter{Actor: "op-1"}, 0)
	require.NoError(t, err)
	assert.Len(t, byActor, 2)

	byAction, err := store.List(ListFilter{Action: "created"}, 0)
	require.NoError(t, err)
	assert.Len(t, byAction, 2)

	byOutcome, err := store.List(ListFilter{Outcome: "denied"}, 0)
	require.NoError(t, err)
	require.Len(t, byOutcome, 1)
	assert.Equal(t, "sign_closure", byOutcome[0].Action)

	limited, err := store.List(ListFilter{}, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestStoreDeleteOlderThan(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	appendEvent(t, store, "cl-1", "op-1", "created", "success", now.Add(-48*time.Hour))
	appendEvent(t, store, "cl-1", "op-1", "sign_closure", "success", now)

	deleted, err := store.DeleteOlderThan(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	remaining, err := store.List(ListFilter{}, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "sign_closure", remaining[0].Action)
}
