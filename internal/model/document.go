package model

import "time"

// Document represents a summarized document.
// This is a pure domain model with no database-specific dependencies or tags.
// It travels unchanged between the HTTP API, the service layer and the client state store.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	StoragePath string    `json:"-"`
	Content     string    `json:"content,omitempty"`
	PreviewText string    `json:"preview_text,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// HasContent reports whether the full extracted text is present.
// List payloads omit it; it is fetched lazily per document.
func (d Document) HasContent() bool {
	return d.Content != ""
}

// DisplayTimeLayout is how upload times are shown to users.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// UploadedAtString formats UploadedAt for display, or returns "Unknown" when the
// service did not report one.
func (d Document) UploadedAtString() string {
	if d.UploadedAt.IsZero() {
		return "Unknown"
	}
	return d.UploadedAt.Local().Format(DisplayTimeLayout)
}
