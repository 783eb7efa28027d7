package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"otomoto_scrooper/models"
	"otomoto_scrooper/storage"
)

// SQLiteExporter writes the run and its records into a fresh database file.
type SQLiteExporter struct {
	dir   string
	brand string
	pages int
	now   func() time.Time
}

func NewSQLiteExporter(dir string, selection models.Selection) *SQLiteExporter {
	return &SQLiteExporter{
		dir:   dir,
		brand: selection.Brand.Name,
		pages: selection.Pages,
		now:   time.Now,
	}
}

func (e *SQLiteExporter) Format() Format {
	return FormatSQLite
}

func (e *SQLiteExporter) Export(ctx context.Context, records []models.Record) (string, error) {
	path := ReportPath(e.dir, FormatSQLite, e.now())
	if err := ensureDir(path); err != nil {
		return "", err
	}

	store, err := storage.NewSQLiteStore(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer store.Close()

	run := &models.ExportRun{
		ID:        uuid.New(),
		Brand:     e.brand,
		Pages:     e.pages,
		StartedAt: e.now(),
		Status:    models.RunStatusRunning,
	}
	if err := store.CreateRun(run); err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}

	if err := store.InsertRecords(ctx, run.ID, records); err != nil {
		if ferr := store.FinishRun(run, models.RunStatusFailed, 0); ferr != nil {
			return "", fmt.Errorf("insert records: %w (mark failed: %v)", err, ferr)
		}
		return "", fmt.Errorf("insert records: %w", err)
	}

	if err := store.FinishRun(run, models.RunStatusCompleted, len(records)); err != nil {
		return "", fmt.Errorf("finish run: %w", err)
	}
	return path, nil
}
