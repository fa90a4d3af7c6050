package services

import (
	"context"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/SscSPs/ledger_books/internal/dto"
)

// ReconcilerSvc builds the merged, deduplicated view of an obligation kind.
type ReconcilerSvc interface {
	// Reconcile visits the configured sources in priority order. The first
	// copy of an id wins; records without an id are dropped.
	Reconcile(ctx context.Context, kind domain.ObligationKind) ([]domain.ObligationRecord, error)

	// Find returns one reconciled record or apperrors.ErrNotFound.
	Find(ctx context.Context, kind domain.ObligationKind, id string) (*domain.ObligationRecord, error)
}

// PaymentSvcFacade posts payments against receivables and payables.
type PaymentSvcFacade interface {
	PostReceivablePayment(ctx context.Context, req dto.PostPaymentRequest) (*dto.PaymentResult, error)
	PostPayablePayment(ctx context.Context, req dto.PostPaymentRequest) (*dto.PaymentResult, error)
}

// LedgerViewReaderSvc builds the paginated ledger views.
type LedgerViewReaderSvc interface {
	CashLedger(ctx context.Context, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error)
	BankLedger(ctx context.Context, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error)
	Receivables(ctx context.Context, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error)
	Payables(ctx context.Context, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error)
	GetObligation(ctx context.Context, kind domain.ObligationKind, id string) (*dto.ObligationDetails, error)
	Receipts(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error)
	Payments(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error)
}

// LedgerViewWriterSvc records manual cash and bank entries.
type LedgerViewWriterSvc interface {
	AddCashTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.TransactionRecord, error)
	AddBankTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.TransactionRecord, error)
}

// LedgerViewSvcFacade combines all ledger view service interfaces.
type LedgerViewSvcFacade interface {
	LedgerViewReaderSvc
	LedgerViewWriterSvc
}

// ObligationLocker serializes postings against the same obligation.
type ObligationLocker interface {
	// Lock blocks until the key is held or ctx is done. The returned function
	// releases the lock and is safe to call once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EventPublisher publishes domain events to downstream consumers.
type EventPublisher interface {
	PublishPaymentPosted(ctx context.Context, evt domain.PaymentPostedEvent) error
	Close() error
}
