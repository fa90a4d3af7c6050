package repositories

import (
	"context"
	"encoding/json"

	"github.com/SscSPs/ledger_books/internal/core/domain"
)

// CollectionStore is implemented by every physical backend. A collection is a
// named JSON array of documents; Set replaces it whole.
type CollectionStore interface {
	// Get returns the documents of a collection. A collection that was never
	// written returns apperrors.ErrNotFound.
	Get(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Set replaces the collection with the given documents.
	Set(ctx context.Context, collection string, documents []json.RawMessage) error
}

// CollectionReader reads one named backend. Missing backends, missing
// collections and backend errors all read as absent.
type CollectionReader interface {
	Read(ctx context.Context, store domain.StoreKind, collection string) ([]json.RawMessage, bool)
}

// CollectionWriter is the read-modify-write side of the storage facade.
type CollectionWriter interface {
	// Load returns the collection from the preferred backend. Unlike Read it
	// reports backend errors, so callers never overwrite a collection they
	// failed to read.
	Load(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Set replaces the collection in the preferred backend.
	Set(ctx context.Context, collection string, documents []json.RawMessage) error
}

// CollectionFacade combines both sides of the storage facade.
type CollectionFacade interface {
	CollectionReader
	CollectionWriter
	// Get reads the preferred backend, treating failures as absent.
	Get(ctx context.Context, collection string) ([]json.RawMessage, bool)
}
