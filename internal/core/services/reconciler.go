package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/utils/jsondocs"
)

// DefaultObligationSources lists where each obligation kind may live, highest
// priority first.
func DefaultObligationSources() map[domain.ObligationKind][]domain.CollectionSource {
	sources := make(map[domain.ObligationKind][]domain.CollectionSource, 2)
	for _, kind := range []domain.ObligationKind{domain.Receivable, domain.Payable} {
		sources[kind] = []domain.CollectionSource{
			{Store: domain.StorePrimary, Collection: kind.CanonicalCollection()},
			{Store: domain.StorePrimary, Collection: kind.AliasCollection()},
			{Store: domain.StoreCache, Collection: kind.CanonicalCollection()},
			{Store: domain.StoreCache, Collection: kind.AliasCollection()},
		}
	}
	return sources
}

type reconciler struct {
	BaseService
	reader  portsrepo.CollectionReader
	sources map[domain.ObligationKind][]domain.CollectionSource
}

// NewReconciler creates a reconciler over the given sources. A nil map uses
// DefaultObligationSources.
func NewReconciler(reader portsrepo.CollectionReader, sources map[domain.ObligationKind][]domain.CollectionSource) portssvc.ReconcilerSvc {
	if sources == nil {
		sources = DefaultObligationSources()
	}
	return &reconciler{reader: reader, sources: sources}
}

var (
	_ portssvc.ReconcilerSvc     = (*reconciler)(nil)
	_ portsrepo.ObligationFinder = (*reconciler)(nil)
)

func (r *reconciler) Reconcile(ctx context.Context, kind domain.ObligationKind) ([]domain.ObligationRecord, error) {
	sources, ok := r.sources[kind]
	if !ok {
		return nil, apperrors.NewValidationError("kind", fmt.Sprintf("unknown obligation kind %q", kind))
	}

	seen := make(map[string]struct{})
	merged := make([]domain.ObligationRecord, 0)
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs, found := r.reader.Read(ctx, source.Store, source.Collection)
		if !found {
			continue
		}

		admitted, dropped := 0, 0
		for _, rec := range jsondocs.Decode[domain.ObligationRecord](ctx, source.Collection, docs) {
			if rec.ID == "" {
				dropped++
				continue
			}
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			merged = append(merged, rec)
			admitted++
		}
		r.LogDebug(ctx, "Reconciled source",
			slog.String("source", source.String()),
			slog.Int("documents", len(docs)),
			slog.Int("admitted", admitted),
			slog.Int("dropped_without_id", dropped))
	}
	return merged, nil
}

func (r *reconciler) Find(ctx context.Context, kind domain.ObligationKind, id string) (*domain.ObligationRecord, error) {
	records, err := r.Reconcile(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			rec := records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
}
