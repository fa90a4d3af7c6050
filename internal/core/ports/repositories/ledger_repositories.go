package repositories

import (
	"context"

	"github.com/SscSPs/ledger_books/internal/core/domain"
)

// LedgerReader defines read operations over the ledger collections.
type LedgerReader interface {
	// GetCashTransactions returns every line of the cash book.
	GetCashTransactions(ctx context.Context) ([]domain.TransactionRecord, error)

	// GetBankTransactions returns every line of the bank book.
	GetBankTransactions(ctx context.Context) ([]domain.TransactionRecord, error)

	// GetReceivables returns the canonical receivables collection only. Use the
	// reconciler for the merged view.
	GetReceivables(ctx context.Context) ([]domain.ObligationRecord, error)

	// GetPayables returns the canonical payables collection only.
	GetPayables(ctx context.Context) ([]domain.ObligationRecord, error)

	GetReceipts(ctx context.Context) ([]domain.SettlementRecord, error)
	GetPayments(ctx context.Context) ([]domain.SettlementRecord, error)

	// GetPartyByID looks the id up in the customer then the vendor directory.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
}

// LedgerWriter defines the append and patch operations used by posting.
type LedgerWriter interface {
	AddCashTransaction(ctx context.Context, txn domain.TransactionRecord) error
	AddBankTransaction(ctx context.Context, txn domain.TransactionRecord) error
	AddReceipt(ctx context.Context, receipt domain.SettlementRecord) error
	AddPayment(ctx context.Context, payment domain.SettlementRecord) error

	// UpdateReceivable merges the patch into the receivable and writes the
	// canonical collection back. Returns apperrors.ErrNotFound when the id
	// cannot be resolved.
	UpdateReceivable(ctx context.Context, id string, patch domain.ObligationPatch) (*domain.ObligationRecord, error)

	// UpdatePayable is UpdateReceivable for payables.
	UpdatePayable(ctx context.Context, id string, patch domain.ObligationPatch) (*domain.ObligationRecord, error)

	// AddPartyTransaction appends an entry to a customer's or vendor's sub-ledger.
	AddPartyTransaction(ctx context.Context, partyID string, entry domain.SubledgerEntry) error
}

// ObligationFinder resolves an obligation against the merged view of all its
// sources. The ledger repository uses it when a record exists only in an
// alias or cached copy.
type ObligationFinder interface {
	Find(ctx context.Context, kind domain.ObligationKind, id string) (*domain.ObligationRecord, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
