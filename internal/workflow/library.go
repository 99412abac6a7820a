package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"docsum/internal/gateway"
	"docsum/internal/model"
	"docsum/internal/state"
)

// Library keeps the document list and selection in step with the service for
// refresh, view, delete and delete-all. Nothing is changed locally until the
// service has confirmed the operation.
type Library struct {
	gw   gateway.Gateway
	docs *state.Documents
	sel  *state.Selection
	log  *zap.Logger
}

// NewLibrary creates the library workflow.
func NewLibrary(gw gateway.Gateway, docs *state.Documents, sel *state.Selection, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{gw: gw, docs: docs, sel: sel, log: log}
}

// Refresh replaces the local list with the service's listing.
// A listing that arrives after the list was changed by another operation is dropped
// and ErrStale returned.
func (l *Library) Refresh(ctx context.Context) error {
	gen := l.docs.Generation()
	docs, err := l.gw.ListDocuments(ctx)
	if err != nil {
		l.log.Warn("refresh_failed", zap.Error(err))
		return fmt.Errorf("list documents: %w", err)
	}
	if !l.docs.ResetIf(gen, docs) {
		l.log.Debug("refresh_discarded")
		return ErrStale
	}
	l.sel.Reconcile(l.docs)
	return nil
}

// View fetches the full record for id and selects it.
// If id left the list before it could be selected the response is dropped and ErrStale returned.
func (l *Library) View(ctx context.Context, id string) (*model.Document, error) {
	doc, err := l.gw.GetDocument(ctx, id)
	if err != nil {
		l.log.Warn("view_failed", zap.String("document_id", id), zap.Error(err))
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	if doc.ID == "" {
		doc.ID = id
	}
	if !l.docs.Replace(*doc) || !l.sel.SelectIfPresent(doc.ID, l.docs) {
		l.log.Debug("view_discarded", zap.String("document_id", id))
		return nil, ErrStale
	}
	return doc, nil
}

// Delete removes id from the service, then from the list. A selection of id is cleared
// in the same step.
func (l *Library) Delete(ctx context.Context, id string) error {
	if err := l.gw.DeleteDocument(ctx, id); err != nil {
		l.log.Warn("delete_failed", zap.String("document_id", id), zap.Error(err))
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	l.docs.Remove(id)
	l.sel.Reconcile(l.docs)
	l.log.Info("document_deleted", zap.String("document_id", id))
	return nil
}

// DeleteAll removes every document from the service, then empties the list and selection.
func (l *Library) DeleteAll(ctx context.Context) error {
	if err := l.gw.DeleteAllDocuments(ctx); err != nil {
		l.log.Warn("delete_all_failed", zap.Error(err))
		return fmt.Errorf("delete all documents: %w", err)
	}
	l.docs.RemoveAll()
	l.sel.Clear()
	l.log.Info("documents_deleted")
	return nil
}

// ClearSelection closes the detail view.
func (l *Library) ClearSelection() {
	l.sel.Clear()
}
