package export

import (
	"context"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/models"
)

func TestCSVExporter_WritesHeaderAndRowsInOrder(t *testing.T) {
	dir := t.TempDir()
	exporter := NewCSVExporter(dir)
	exporter.now = func() time.Time { return fixedTime }

	records := sampleRecords()
	before := append([]models.Record(nil), records...)

	path, err := exporter.Export(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, ReportPath(dir, FormatCSV, fixedTime), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)

	assert.Equal(t, models.RecordFields, rows[0])
	for i, r := range records {
		assert.Equal(t, r.Values(), rows[i+1])
	}
	assert.Equal(t, "Volkswagen Passat, \"B8\"", rows[2][1])
	assert.Equal(t, before, records)
}

func TestCSVExporter_RepeatableOnSameRecords(t *testing.T) {
	dir := t.TempDir()
	exporter := NewCSVExporter(dir)
	records := sampleRecords()

	exporter.now = func() time.Time { return fixedTime }
	first, err := exporter.Export(context.Background(), records)
	require.NoError(t, err)

	exporter.now = func() time.Time { return fixedTime.Add(time.Second) }
	second, err := exporter.Export(context.Background(), records)
	require.NoError(t, err)

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCSVExporter_EmptyRecords(t *testing.T) {
	exporter := NewCSVExporter(t.TempDir())

	path, err := exporter.Export(context.Background(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image,title,price,currency,tank,power,equipment,mileage,fuel_type,gearbox,production_date,location\n", string(data))
}
