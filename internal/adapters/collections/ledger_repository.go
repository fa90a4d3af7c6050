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
	"github.com/SscSPs/ledger_books/internal/platform/lock"
	"github.com/SscSPs/ledger_books/internal/platform/logging"
	"github.com/SscSPs/ledger_books/internal/utils/jsondocs"
)

// LedgerRepository implements the ledger collections on top of the facade.
// Appends and patches are read-modify-write of the whole collection, so
// writers to the same collection are serialized in-process.
type LedgerRepository struct {
	facade portsrepo.CollectionFacade
	finder portsrepo.ObligationFinder
	writes *lock.KeyedMutex
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

// NewLedgerRepository creates the repository. The finder may be nil; when set
// it is consulted for an updated obligation missing from its canonical
// collection.
func NewLedgerRepository(facade portsrepo.CollectionFacade, finder portsrepo.ObligationFinder) *LedgerRepository {
	return &LedgerRepository{facade: facade, finder: finder, writes: lock.NewKeyedMutex()}
}

func readAll[T any](ctx context.Context, facade portsrepo.CollectionFacade, collection string) []T {
	docs, _ := facade.Get(ctx, collection)
	return jsondocs.Decode[T](ctx, collection, docs)
}

func (r *LedgerRepository) GetCashTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	return readAll[domain.TransactionRecord](ctx, r.facade, domain.CollectionCashTransactions), ctx.Err()
}

func (r *LedgerRepository) GetBankTransactions(ctx context.Context) ([]domain.TransactionRecord, error) {
	return readAll[domain.TransactionRecord](ctx, r.facade, domain.CollectionBankTransactions), ctx.Err()
}

func (r *LedgerRepository) GetReceivables(ctx context.Context) ([]domain.ObligationRecord, error) {
	return readAll[domain.ObligationRecord](ctx, r.facade, domain.CollectionReceivables), ctx.Err()
}

func (r *LedgerRepository) GetPayables(ctx context.Context) ([]domain.ObligationRecord, error) {
	return readAll[domain.ObligationRecord](ctx, r.facade, domain.CollectionPayables), ctx.Err()
}

func (r *LedgerRepository) GetReceipts(ctx context.Context) ([]domain.SettlementRecord, error) {
	return readAll[domain.SettlementRecord](ctx, r.facade, domain.Receivable.SettlementCollection()), ctx.Err()
}

func (r *LedgerRepository) GetPayments(ctx context.Context) ([]domain.SettlementRecord, error) {
	return readAll[domain.SettlementRecord](ctx, r.facade, domain.Payable.SettlementCollection()), ctx.Err()
}

// GetPartyByID looks in the customer directory first, then the vendors.
func (r *LedgerRepository) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	if partyID == "" {
		return nil, apperrors.ErrNotFound
	}
	for _, kind := range []domain.ObligationKind{domain.Receivable, domain.Payable} {
		for _, party := range readAll[domain.Party](ctx, r.facade, kind.PartyDirectory()) {
			if party.Key() == partyID {
				p := party
				return &p, nil
			}
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *LedgerRepository) AddCashTransaction(ctx context.Context, txn domain.TransactionRecord) error {
	return r.appendDocument(ctx, domain.CollectionCashTransactions, txn)
}

func (r *LedgerRepository) AddBankTransaction(ctx context.Context, txn domain.TransactionRecord) error {
	return r.appendDocument(ctx, domain.CollectionBankTransactions, txn)
}

func (r *LedgerRepository) AddReceipt(ctx context.Context, receipt domain.SettlementRecord) error {
	return r.appendDocument(ctx, domain.Receivable.SettlementCollection(), receipt)
}

func (r *LedgerRepository) AddPayment(ctx context.Context, payment domain.SettlementRecord) error {
	return r.appendDocument(ctx, domain.Payable.SettlementCollection(), payment)
}

func (r *LedgerRepository) AddPartyTransaction(ctx context.Context, partyID string, entry domain.SubledgerEntry) error {
	if partyID == "" {
		return apperrors.NewValidationError("partyId", "party id is required")
	}
	return r.appendDocument(ctx, domain.PartyTransactionsCollection(partyID), entry)
}

func (r *LedgerRepository) UpdateReceivable(ctx context.Context, id string, patch domain.ObligationPatch) (*domain.ObligationRecord, error) {
	return r.updateObligation(ctx, domain.Receivable, id, patch)
}

func (r *LedgerRepository) UpdatePayable(ctx context.Context, id string, patch domain.ObligationPatch) (*domain.ObligationRecord, error) {
	return r.updateObligation(ctx, domain.Payable, id, patch)
}

func (r *LedgerRepository) appendDocument(ctx context.Context, collection string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document for %s: %w", collection, err)
	}

	unlock := r.writes.Lock(collection)
	defer unlock()

	docs, err := r.facade.Load(ctx, collection)
	if err != nil {
		return err
	}
	docs = append(docs, raw)
	return r.facade.Set(ctx, collection, docs)
}

// updateObligation merges the patch into the stored document so fields this
// service does not model survive. When the id is only present in an alias or
// cached copy, the patched merged record is appended to the canonical
// collection.
func (r *LedgerRepository) updateObligation(ctx context.Context, kind domain.ObligationKind, id string, patch domain.ObligationPatch) (*domain.ObligationRecord, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id", "obligation id is required")
	}
	collection := kind.CanonicalCollection()

	patchFields, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode patch: %w", err)
	}

	unlock := r.writes.Lock(collection)
	defer unlock()

	docs, err := r.facade.Load(ctx, collection)
	if err != nil {
		return nil, err
	}

	for i, doc := range docs {
		if domain.IDOf(doc) != id {
			continue
		}
		merged, err := mergeDocument(doc, patchFields)
		if err != nil {
			return nil, fmt.Errorf("failed to patch %s %s: %w", kind, id, err)
		}
		var updated domain.ObligationRecord
		if err := json.Unmarshal(merged, &updated); err != nil {
			return nil, fmt.Errorf("failed to decode patched %s %s: %w", kind, id, err)
		}
		docs[i] = merged
		if err := r.facade.Set(ctx, collection, docs); err != nil {
			return nil, err
		}
		return &updated, nil
	}

	if r.finder == nil {
		return nil, fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
	}
	found, err := r.finder.Find(ctx, kind, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, apperrors.ErrNotFound)
		}
		return nil, err
	}

	updated := patch.Apply(*found)
	raw, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s %s: %w", kind, id, err)
	}
	logging.FromContextOrDefault(ctx).Info("Promoting obligation into canonical collection",
		slog.String("collection", collection),
		slog.String("id", id))
	if err := r.facade.Set(ctx, collection, append(docs, raw)); err != nil {
		return nil, err
	}
	return &updated, nil
}

func mergeDocument(doc, patch json.RawMessage) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, err
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, err
	}
	for k, v := range overlay {
		fields[k] = v
	}
	return json.Marshal(fields)
}
