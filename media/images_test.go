package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func newTestFetcher(t *testing.T) (*ImageFetcher, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	fetcher, err := NewImageFetcher(resty.New().SetTransport(transport), 4)
	require.NoError(t, err)
	return fetcher, transport
}

func TestPrepare(t *testing.T) {
	img, err := Prepare(testPNG(t, 40, 30), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "PNG", img.Type)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 30, img.Height)
	assert.Len(t, img.Name, 16)

	img, err = Prepare(testJPEG(t, 8, 6), "")
	require.NoError(t, err)
	assert.Equal(t, "JPG", img.Type)

	_, err = Prepare([]byte("<html>not an image</html>"), "text/html")
	assert.ErrorContains(t, err, "text/html")
}

func TestImageFetcher_DownloadsAndCaches(t *testing.T) {
	fetcher, transport := newTestFetcher(t)
	data := testPNG(t, 10, 10)
	transport.RegisterResponder("GET", "https://img.example/car.png",
		httpmock.NewBytesResponder(http.StatusOK, data))

	first, err := fetcher.Fetch(context.Background(), "https://img.example/car.png")
	require.NoError(t, err)
	second, err := fetcher.Fetch(context.Background(), "https://img.example/car.png")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, data, first.Data)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestImageFetcher_Errors(t *testing.T) {
	fetcher, transport := newTestFetcher(t)
	transport.RegisterResponder("GET", "https://img.example/missing.jpg",
		httpmock.NewStringResponder(http.StatusNotFound, "gone"))

	_, err := fetcher.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoImage)

	_, err = fetcher.Fetch(context.Background(), "https://img.example/missing.jpg")
	assert.ErrorContains(t, err, "404")
}
