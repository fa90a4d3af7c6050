package collections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_books/internal/platform/logging"
)

// Facade fronts the primary store and the fallback cache. It never merges
// the two; reads and writes go to the primary when one is configured.
type Facade struct {
	primary portsrepo.CollectionStore
	cache   portsrepo.CollectionStore
}

var _ portsrepo.CollectionFacade = (*Facade)(nil)

// NewFacade creates a facade. Either store may be nil, not both.
func NewFacade(primary, cache portsrepo.CollectionStore) (*Facade, error) {
	if primary == nil && cache == nil {
		return nil, fmt.Errorf("at least one collection store is required: %w", apperrors.ErrInternal)
	}
	return &Facade{primary: primary, cache: cache}, nil
}

func (f *Facade) store(kind domain.StoreKind) portsrepo.CollectionStore {
	switch kind {
	case domain.StorePrimary:
		return f.primary
	case domain.StoreCache:
		return f.cache
	}
	return nil
}

func (f *Facade) preferred() (domain.StoreKind, portsrepo.CollectionStore) {
	if f.primary != nil {
		return domain.StorePrimary, f.primary
	}
	return domain.StoreCache, f.cache
}

// HasStore reports whether the backend is configured.
func (f *Facade) HasStore(kind domain.StoreKind) bool {
	return f.store(kind) != nil
}

// Read returns one backend's copy of a collection. Absence covers a missing
// backend, a missing collection and a failed read.
func (f *Facade) Read(ctx context.Context, kind domain.StoreKind, collection string) ([]json.RawMessage, bool) {
	store := f.store(kind)
	if store == nil {
		return nil, false
	}
	docs, err := store.Get(ctx, collection)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logging.FromContextOrDefault(ctx).Warn("Collection read failed, treating as absent",
				slog.String("store", string(kind)),
				slog.String("collection", collection),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return docs, true
}

// Get reads the preferred backend, treating failures as absent.
func (f *Facade) Get(ctx context.Context, collection string) ([]json.RawMessage, bool) {
	kind, _ := f.preferred()
	return f.Read(ctx, kind, collection)
}

// Load reads the preferred backend for a read-modify-write. A collection
// that does not exist yet loads as empty.
func (f *Facade) Load(ctx context.Context, collection string) ([]json.RawMessage, error) {
	kind, store := f.preferred()
	docs, err := store.Get(ctx, collection)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("%w: reading %s from %s store: %w", apperrors.ErrStorage, collection, kind, err)
	}
	return docs, nil
}

// Set replaces the collection in the preferred backend.
func (f *Facade) Set(ctx context.Context, collection string, documents []json.RawMessage) error {
	kind, store := f.preferred()
	if err := store.Set(ctx, collection, documents); err != nil {
		return fmt.Errorf("%w: writing %s to %s store: %w", apperrors.ErrStorage, collection, kind, err)
	}
	return nil
}

// Mirror refreshes the cache copy of one collection from the primary store.
// The primary's documents replace cached ones with the same id. Cached
// documents whose id the primary lacks are kept after them, since the cache
// is itself a source for the merged view. Cached documents without an id
// are dropped. It is a no-op unless both backends are configured and the
// primary holds the collection.
func (f *Facade) Mirror(ctx context.Context, collection string) (bool, error) {
	if f.primary == nil || f.cache == nil {
		return false, nil
	}
	docs, err := f.primary.Get(ctx, collection)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: reading %s from primary store: %w", apperrors.ErrStorage, collection, err)
	}
	cached, err := f.cache.Get(ctx, collection)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, fmt.Errorf("%w: reading %s from cache store: %w", apperrors.ErrStorage, collection, err)
	}

	merged, kept := mergeByID(docs, cached)
	if err := f.cache.Set(ctx, collection, merged); err != nil {
		return false, fmt.Errorf("%w: writing %s to cache store: %w", apperrors.ErrStorage, collection, err)
	}
	if kept > 0 {
		logging.FromContextOrDefault(ctx).Debug("Kept cache-only documents",
			slog.String("collection", collection),
			slog.Int("kept", kept))
	}
	return true, nil
}

func mergeByID(primary, cached []json.RawMessage) ([]json.RawMessage, int) {
	ids := make(map[string]struct{}, len(primary))
	for _, doc := range primary {
		if id := domain.IDOf(doc); id != "" {
			ids[id] = struct{}{}
		}
	}
	merged := append(make([]json.RawMessage, 0, len(primary)+len(cached)), primary...)
	kept := 0
	for _, doc := range cached {
		id := domain.IDOf(doc)
		if id == "" {
			continue
		}
		if _, dup := ids[id]; dup {
			continue
		}
		ids[id] = struct{}{}
		merged = append(merged, doc)
		kept++
	}
	return merged, kept
}
