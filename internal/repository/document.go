// Package repository contains data access abstractions for summarized documents.
// Implementations live in subpackages (e.g. postgres).
package repository

import (
	"context"
	"errors"

	"docsum/internal/model"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("repository: document not found")

// DocumentRepository defines persistence for documents. It contains no business logic.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns the full record, content included, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns documents newest first without their content, plus the total row count.
	// A non-positive Limit returns every row.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Delete removes a document by id and returns ErrNotFound if no row existed.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every document and returns how many rows were deleted.
	DeleteAll(ctx context.Context) (int64, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
