package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docsum/internal/config"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(config.LogConfig{Level: "info", Production: true}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("document_summarized", zap.String("document_id", "1"))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "document_summarized", entry["msg"])
	assert.Equal(t, "1", entry["document_id"])
	assert.NotEmpty(t, entry["ts"])
}

func TestNewWithWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsum.log")
	var buf bytes.Buffer

	l, err := NewWithWriter(config.LogConfig{Level: "info", File: path, Production: false}, &buf)
	require.NoError(t, err)

	l.Info("written_to_file")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written_to_file")
	assert.Contains(t, buf.String(), "written_to_file")
}

func TestNewWithWriter_InvalidLevel(t *testing.T) {
	l, err := NewWithWriter(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNewVerbose(t *testing.T) {
	assert.NotNil(t, NewVerbose(false))
	assert.NotNil(t, NewVerbose(true))
}
