package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Repository is the persistence gateway for generated documents.
//
// Insert must fail with a DuplicateNumber error when the document number
// already exists; the sequence allocator relies on that as its concurrency
// safety net.
type Repository interface {
	// MaxNumber returns the greatest document number for the given type
	// matching prefix, or "" when none exists. Numbers sharing a prefix
	// compare by length first so ordering stays numeric beyond the
	// zero-padding width.
	MaxNumber(ctx context.Context, docType DocumentType, prefix string) (string, error)

	Insert(ctx context.Context, doc *Document) error

	// UpdatePDFPath back-fills the rendered file path on a committed row.
	UpdatePDFPath(ctx context.Context, id snowflake.ID, path string) error

	GetByNumber(ctx context.Context, number string) (*Document, error)

	// ListByUser returns a user's documents, newest first, optionally
	// filtered by type. A zero limit applies the default of 50.
	ListByUser(ctx context.Context, userID int64, docType DocumentType, limit int) ([]Document, error)

	CountByType(ctx context.Context, userID int64) (map[DocumentType]int64, error)
}
