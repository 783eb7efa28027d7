package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriter_RotatesPastMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.log")
	w, err := NewRotatingWriter(path)
	require.NoError(t, err)
	defer w.Close()
	w.maxSize = 16

	_, err = w.Write([]byte("first line that is long\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "first line that is long\n", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(current))
}

func TestSetup_WritesComponentField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.log")
	w, err := Setup(path, "debug")
	require.NoError(t, err)

	logger := For("fetcher")
	logger.Info().Msg("page 1: 32 listings")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"component":"fetcher"`))
	assert.True(t, strings.Contains(string(data), "page 1: 32 listings"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
}
