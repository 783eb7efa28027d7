package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otomoto_scrooper/media"
	"otomoto_scrooper/models"
)

type stubImages struct {
	images map[string]*media.Image
	calls  []string
}

func (s *stubImages) Fetch(ctx context.Context, imageURL string) (*media.Image, error) {
	s.calls = append(s.calls, imageURL)
	if img, ok := s.images[imageURL]; ok {
		return img, nil
	}
	return nil, errors.New("download status: 404")
}

func pngImage(t *testing.T) *media.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))))
	img, err := media.Prepare(buf.Bytes(), "image/png")
	require.NoError(t, err)
	return img
}

func TestPDFExporter_WritesReport(t *testing.T) {
	dir := t.TempDir()
	images := &stubImages{images: map[string]*media.Image{
		"https://img.example/golf.png": pngImage(t),
	}}
	exporter := NewPDFExporter(dir, "", images)
	exporter.now = func() time.Time { return fixedTime }

	records := sampleRecords()
	before := append([]models.Record(nil), records...)

	path, err := exporter.Export(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, ReportPath(dir, FormatPDF, fixedTime), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	assert.Equal(t, []string{"https://img.example/golf.png", "https://img.example/broken.jpg"}, images.calls)
	assert.Equal(t, before, records)
}

func TestPDFExporter_NoRecords(t *testing.T) {
	exporter := NewPDFExporter(t.TempDir(), "", nil)

	path, err := exporter.Export(context.Background(), nil)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 1, PageCount(0))
	assert.Equal(t, 1, PageCount(3))
	assert.Equal(t, 2, PageCount(4))
	assert.Equal(t, 11, PageCount(32))
}

func TestFit(t *testing.T) {
	w, h := fit(640, 480, 60, 80)
	assert.InDelta(t, 60, w, 0.001)
	assert.InDelta(t, 45, h, 0.001)

	w, h = fit(480, 640, 60, 40)
	assert.InDelta(t, 30, w, 0.001)
	assert.InDelta(t, 40, h, 0.001)
}

func TestJoinNonEmpty(t *testing.T) {
	assert.Equal(t, "2.0 / 150 KM / Diesel", joinNonEmpty(" / ", "2.0", "150 KM", "", "Diesel", " "))
	assert.Equal(t, "", joinNonEmpty(" / "))
}
