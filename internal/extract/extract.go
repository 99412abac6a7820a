// Package extract turns uploaded files into plain text for summarization.
// Plain text and Markdown are read as-is, DOCX is unzipped and parsed, and PDF is
// delegated to the poppler pdftotext tool.
package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnsupportedType is returned for file extensions that cannot be extracted.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrInvalidDocument is returned when a file does not match its declared format.
	ErrInvalidDocument = errors.New("invalid document")
)

const (
	mimeText     = "text/plain"
	mimeMarkdown = "text/markdown"
	mimePDF      = "application/pdf"
	mimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var contentTypes = map[string]string{
	".txt":  mimeText,
	".md":   mimeMarkdown,
	".pdf":  mimePDF,
	".docx": mimeDOCX,
}

// ContentType returns the MIME type for a supported filename, or "" if the type is unsupported.
func ContentType(filename string) string {
	return contentTypes[strings.ToLower(filepath.Ext(filename))]
}

// Supported reports whether filename has an extractable extension.
func Supported(filename string) bool {
	return ContentType(filename) != ""
}

// Extractor converts file bytes into text.
type Extractor struct {
	pdf *pdfExtractor
}

// New creates an Extractor that runs pdftotext from PATH.
func New() *Extractor {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates an Extractor with a custom command runner for PDF conversion.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{pdf: newPDFExtractor(runner)}
}

// Extract returns the text of content, chosen by the extension of filename.
// The result is trimmed and guaranteed to be valid UTF-8.
func (e *Extractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch ContentType(filename) {
	case mimeText, mimeMarkdown:
		text = string(content)
	case mimeDOCX:
		text, err = extractDOCX(content)
	case mimePDF:
		text, err = e.pdf.extract(ctx, content)
	default:
		return "", ErrUnsupportedType
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.ToValidUTF8(text, string(utf8.RuneError))), nil
}

// Truncate returns the first n characters of s. n <= 0 returns s unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
