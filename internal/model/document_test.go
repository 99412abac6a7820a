package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_JSON(t *testing.T) {
	doc := Document{
		ID:          "1",
		Filename:    "notes.txt",
		StoragePath: "documents/secret.txt",
		Summary:     "S1",
		UploadedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "1", raw["id"])
	assert.Equal(t, "notes.txt", raw["filename"])
	assert.Equal(t, "2025-01-02T03:04:05Z", raw["uploaded_at"])
	assert.NotContains(t, raw, "storage_path")
	assert.NotContains(t, raw, "StoragePath")
	assert.NotContains(t, raw, "content")
}

func TestDocument_HasContent(t *testing.T) {
	assert.False(t, Document{ID: "1"}.HasContent())
	assert.True(t, Document{ID: "1", Content: "C1"}.HasContent())
}

func TestDocument_UploadedAtString(t *testing.T) {
	assert.Equal(t, "Unknown", Document{ID: "1"}.UploadedAtString())

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	assert.Equal(t, "2025-01-02 03:04:05", Document{ID: "1", UploadedAt: at}.UploadedAtString())
}
