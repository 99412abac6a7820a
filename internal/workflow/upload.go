package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"docsum/internal/gateway"
	"docsum/internal/model"
	"docsum/internal/state"
)

// File is a document picked by the user for upload.
type File struct {
	Name    string
	Content []byte
}

// Upload submits one document at a time and, on success, lists and selects it.
type Upload struct {
	gw     gateway.Gateway
	docs   *state.Documents
	sel    *state.Selection
	log    *zap.Logger
	flight flight
}

// NewUpload creates the upload workflow.
func NewUpload(gw gateway.Gateway, docs *state.Documents, sel *state.Selection, log *zap.Logger) *Upload {
	if log == nil {
		log = zap.NewNop()
	}
	return &Upload{gw: gw, docs: docs, sel: sel, log: log}
}

// Status reports whether a submission is in flight.
func (u *Upload) Status() Status {
	return u.flight.status()
}

// Subscribe registers fn to run whenever Status changes.
func (u *Upload) Subscribe(fn state.Listener) (cancel func()) {
	return u.flight.obs.Subscribe(fn)
}

// Run submits f and returns the summarized record.
//
// Without file content it fails with ErrNoFile before any remote call. While another
// submission is in flight it fails with ErrBusy. A remote failure leaves the document
// list and the selection untouched.
func (u *Upload) Run(ctx context.Context, f File) (*model.Document, error) {
	if len(f.Content) == 0 {
		return nil, ErrNoFile
	}
	if !u.flight.begin() {
		return nil, ErrBusy
	}
	defer u.flight.end()

	name := filepath.Base(f.Name)
	doc, err := u.gw.SubmitDocument(ctx, f.Content, name)
	if err != nil {
		u.log.Warn("upload_failed", zap.String("filename", name), zap.Error(err))
		return nil, fmt.Errorf("summarize %s: %w", name, err)
	}

	if err := u.docs.InsertAtFront(*doc); err != nil {
		if !errors.Is(err, state.ErrDuplicateID) {
			return nil, err
		}
		// a refresh that completed first already listed this document
		u.docs.Replace(*doc)
	}
	if !u.sel.SelectIfPresent(doc.ID, u.docs) {
		u.log.Debug("upload_selection_skipped", zap.String("document_id", doc.ID))
	}

	u.log.Info("upload_succeeded", zap.String("document_id", doc.ID), zap.String("filename", doc.Filename))
	return doc, nil
}
