package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/models"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

func sampleRecords() []models.Record {
	return []models.Record{
		{
			Image: "https://img.example/golf.png", Title: "Volkswagen Golf", Price: "59 900", Currency: "PLN",
			Tank: "1 968 cm3", Power: "150 KM", Equipment: "Highline", Mileage: "125 000 km",
			FuelType: "Diesel", Gearbox: "Manualna", ProductionDate: "2018", Location: "Łódź (Łódzkie)",
		},
		{Title: "Volkswagen Passat, \"B8\"", Price: "42 500", Currency: "PLN", Tank: "2.0"},
		{Image: "https://img.example/broken.jpg", Title: "Volkswagen up!"},
		{Title: "Volkswagen Polo", Location: "Gdańsk"},
	}
}

func TestReportPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "Report_20240309_140507.csv"), ReportPath("out", FormatCSV, fixedTime))
	assert.Equal(t, "Report_20240309_140507.pdf", ReportPath("", FormatPDF, fixedTime))
	assert.Equal(t, "Report_20240309_140507.db", ReportPath("", FormatSQLite, fixedTime))
}

func TestParseFormats(t *testing.T) {
	formats, err := ParseFormats([]string{"csv,PDF", " sqlite ", "csv"})
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatCSV, FormatPDF, FormatSQLite}, formats)

	_, err = ParseFormats([]string{"xlsx"})
	assert.Error(t, err)

	formats, err = ParseFormats(nil)
	require.NoError(t, err)
	assert.Empty(t, formats)
}
