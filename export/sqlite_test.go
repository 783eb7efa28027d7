package export

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/models"
)

func TestSQLiteExporter_WritesRunAndListings(t *testing.T) {
	dir := t.TempDir()
	selection := models.Selection{Brand: models.Brand{Name: "volkswagen", Count: 40}, Pages: 1}
	exporter := NewSQLiteExporter(dir, selection)
	exporter.now = func() time.Time { return fixedTime }

	records := sampleRecords()
	path, err := exporter.Export(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, ReportPath(dir, FormatSQLite, fixedTime), path)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var brand, status string
	var pages, count int
	require.NoError(t, db.QueryRow(`SELECT brand, pages, status, records FROM export_runs`).Scan(&brand, &pages, &status, &count))
	assert.Equal(t, "volkswagen", brand)
	assert.Equal(t, 1, pages)
	assert.Equal(t, string(models.RunStatusCompleted), status)
	assert.Equal(t, len(records), count)

	rows, err := db.Query(`SELECT title FROM listings ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var title string
		require.NoError(t, rows.Scan(&title))
		got = append(got, title)
	}
	assert.Equal(t, []string{records[0].Title, records[1].Title, records[2].Title, records[3].Title}, got)
}
