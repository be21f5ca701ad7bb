package repository

import (
	"context"

	"printshop/internal/model"
)

// DocumentRepository stores uploaded document metadata. The file bytes live
// in object storage under Document.StoragePath.
type DocumentRepository interface {
	// Create inserts doc. ID and CreatedAt are set by the caller.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)
	FindByID(ctx context.Context, id string) (*model.Document, error)
	// List pages through every document, newest first, with the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)
	// ListByUser returns the documents owned by userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Document, error)
	// Update replaces the stored row; used to stamp LastPrintedAt when a job
	// completes. Returns ErrNotFound for an unknown id.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)
	// Delete is idempotent: removing an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// PageQuery is a limit/offset window over a listing.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult holds one page of items and the size of the whole listing.
type PageResult[T any] struct {
	Items []T
	Total int
}
