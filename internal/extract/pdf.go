package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found: install poppler-utils to summarize PDF files")

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type pdfExtractor struct {
	runner   CommandRunner
	lookPath func(string) (string, error)
}

func newPDFExtractor(runner CommandRunner) *pdfExtractor {
	return &pdfExtractor{runner: runner, lookPath: exec.LookPath}
}

// extract writes content to a temporary file because pdftotext needs a seekable input.
func (p *pdfExtractor) extract(ctx context.Context, content []byte) (string, error) {
	bin, err := p.lookPath("pdftotext")
	if err != nil {
		return "", ErrPDFToolNotFound
	}

	tmp, err := os.CreateTemp("", "docsum-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	out, err := p.runner.Run(ctx, bin, "-layout", "-enc", "UTF-8", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext failed: %v", ErrInvalidDocument, err)
	}
	return string(out), nil
}
