package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/identity"
	"otomoto_scrooper/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "report.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	store := newTestStore(t)
	run := &models.ExportRun{
		ID:        uuid.New(),
		Brand:     "volkswagen",
		Pages:     2,
		StartedAt: time.Now().Add(-time.Minute),
		Status:    models.RunStatusRunning,
	}
	require.NoError(t, store.CreateRun(run))
	require.NoError(t, store.FinishRun(run, models.RunStatusCompleted, 3))

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "volkswagen", got.Brand)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, 3, got.Records)
	assert.NotNil(t, got.FinishedAt)

	missing, err := store.GetRun(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLiteStore_RecordsKeepOrder(t *testing.T) {
	store := newTestStore(t)
	run := &models.ExportRun{ID: uuid.New(), Brand: "bmw", Pages: 1, StartedAt: time.Now(), Status: models.RunStatusRunning}
	require.NoError(t, store.CreateRun(run))

	records := []models.Record{
		{Title: "A", Price: "10 000", Location: "Kraków"},
		{Title: "B", FuelType: "Diesel"},
		{Title: "C", Image: "https://img.example/c.jpg"},
	}
	require.NoError(t, store.InsertRecords(context.Background(), run.ID, records))

	got, err := store.GetRecords(run.ID)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	var fingerprint string
	require.NoError(t, store.db.QueryRow(
		`SELECT fingerprint FROM listings WHERE run_id = ? AND position = 0`, run.ID.String()).Scan(&fingerprint))
	assert.Equal(t, identity.Fingerprint(records[0]), fingerprint)
}
