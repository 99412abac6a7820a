// Package gateway is the client's boundary to the remote summarization service.
// It maps the six remote operations onto a typed interface and classifies every failure.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"docsum/internal/model"
)

// Gateway wraps the remote operations. Implementations hold no client state and never retry.
type Gateway interface {
	// SubmitDocument uploads a file and returns the summarized document record.
	SubmitDocument(ctx context.Context, content []byte, filename string) (*model.Document, error)

	// ListDocuments returns every stored document, newest first. Content is usually absent.
	ListDocuments(ctx context.Context) ([]model.Document, error)

	// GetDocument returns the full record, including its content.
	GetDocument(ctx context.Context, id string) (*model.Document, error)

	// DeleteDocument removes a single document.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteAllDocuments removes every document.
	DeleteAllDocuments(ctx context.Context) error

	// AskAssistant sends a free-form prompt and returns the assistant's answer.
	AskAssistant(ctx context.Context, prompt string) (string, error)
}

// Kind classifies a gateway failure.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors that did not come from a Gateway.
	KindUnknown Kind = iota
	// KindNetwork covers transport failures and timeouts.
	KindNetwork
	// KindServerRejected covers reachable servers that refused the request or answered with garbage.
	KindServerRejected
	// KindNotFound means the referenced identifier does not exist server-side.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServerRejected:
		return "server_rejected"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

var (
	// ErrEmptyContent is returned when SubmitDocument is called without file content.
	ErrEmptyContent = errors.New("gateway: file content is required")
	// ErrEmptyPrompt is returned when AskAssistant is called with an empty prompt.
	ErrEmptyPrompt = errors.New("gateway: prompt is required")
)

// Error is the typed failure returned by every Gateway operation.
type Error struct {
	// Op names the remote operation, e.g. "submit-document".
	Op string
	// Kind is the failure class.
	Kind Kind
	// Status is the HTTP status code, zero for transport failures.
	Status int
	// Message is the server's error message when one could be decoded.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s: %s (status %d): %s", e.Op, e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of a gateway error anywhere in err's chain.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is a gateway NotFound failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
