package workflow

import (
	"errors"

	"docsum/internal/gateway"
	"docsum/internal/state"
)

var (
	// ErrNoFile is the precondition failure for an upload without file content.
	ErrNoFile = errors.New("please select a file")

	// ErrEmptyPrompt is the precondition failure for a blank assistant prompt.
	ErrEmptyPrompt = errors.New("please type a question")

	// ErrBusy is returned when a single-flight workflow is already running.
	ErrBusy = errors.New("operation already in progress")

	// ErrStale is returned when a response arrives after the local state it was requested
	// against has changed. The response is discarded.
	ErrStale = errors.New("document list changed")
)

// IsPrecondition reports whether err was raised before any remote call was made.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoFile) || errors.Is(err, ErrEmptyPrompt)
}

// Describe turns a workflow error into one short line for the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoFile), errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrBusy):
		return capitalize(err.Error())
	case errors.Is(err, ErrStale), errors.Is(err, state.ErrDuplicateID):
		return "The document list changed; refresh and try again."
	}

	switch gateway.KindOf(err) {
	case gateway.KindNetwork:
		return "Could not reach the summarizer service."
	case gateway.KindNotFound:
		return "That document no longer exists."
	case gateway.KindServerRejected:
		var gwErr *gateway.Error
		if errors.As(err, &gwErr) && gwErr.Message != "" {
			return "The summarizer service rejected the request: " + gwErr.Message
		}
		return "The summarizer service rejected the request."
	default:
		return "Something went wrong: " + err.Error()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
