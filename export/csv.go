package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"otomoto_scrooper/models"
)

type CSVExporter struct {
	dir string
	now func() time.Time
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir, now: time.Now}
}

func (e *CSVExporter) Format() Format {
	return FormatCSV
}

// Export writes a header row and one row per record in field declaration
// order.
func (e *CSVExporter) Export(ctx context.Context, records []models.Record) (string, error) {
	path := ReportPath(e.dir, FormatCSV, e.now())
	if err := ensureDir(path); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.RecordFields); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := w.Write(r.Values()); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return path, f.Close()
}
