package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"otomoto_scrooper/models"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatPDF    Format = "pdf"
	FormatSQLite Format = "sqlite"
)

var extensions = map[Format]string{
	FormatCSV:    ".csv",
	FormatPDF:    ".pdf",
	FormatSQLite: ".db",
}

// Exporter writes records to one report file and returns its path.
// Implementations read records without modifying or keeping them.
type Exporter interface {
	Format() Format
	Export(ctx context.Context, records []models.Record) (string, error)
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extensions[f]; !ok {
		return "", fmt.Errorf("unknown export format %q (want csv, pdf or sqlite)", s)
	}
	return f, nil
}

func ParseFormats(values []string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			f, err := ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	return formats, nil
}

// ReportPath names a report Report_YYYYMMDD_HHMMSS.<ext> inside dir.
func ReportPath(dir string, format Format, at time.Time) string {
	name := "Report_" + at.Format("20060102_150405") + extensions[format]
	return filepath.Join(dir, name)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
