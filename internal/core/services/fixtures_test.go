package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_books/internal/adapters/collections"
	"github.com/SscSPs/ledger_books/internal/adapters/storage/memory"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/core/services"
	"github.com/SscSPs/ledger_books/internal/platform/config"
	"github.com/SscSPs/ledger_books/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

// sequentialIDs hands out PREFIX-1, PREFIX-2, ...
type sequentialIDs struct{ n int }

func (s *sequentialIDs) Next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishPaymentPosted(ctx context.Context, evt domain.PaymentPostedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

var _ portssvc.EventPublisher = (*MockEventPublisher)(nil)

// ledgerFixture wires the real collection stack over two in-memory stores.
type ledgerFixture struct {
	primary   *memory.CollectionStore
	cache     *memory.CollectionStore
	facade    *collections.Facade
	repo      *collections.LedgerRepository
	container *portssvc.ServiceContainer
}

func newLedgerFixture(t *testing.T, opts services.ContainerOptions) *ledgerFixture {
	t.Helper()
	primary := memory.NewCollectionStore()
	cache := memory.NewCollectionStore()
	facade, err := collections.NewFacade(primary, cache)
	require.NoError(t, err)
	if opts.Reconciler == nil {
		opts.Reconciler = services.NewReconciler(facade, nil)
	}
	repo := collections.NewLedgerRepository(facade, opts.Reconciler)

	if opts.Clock == nil {
		opts.Clock = utils.FixedClock{At: testNow}
	}
	if opts.IDs == nil {
		opts.IDs = &sequentialIDs{}
	}
	if opts.Formatter == nil {
		opts.Formatter = utils.NewCurrencyFormatter("Rp", "en")
	}
	cfg := &config.Config{DefaultPageSize: domain.DefaultPageSize}
	container := services.NewServiceContainer(cfg, portsrepo.RepositoryProvider{
		Collections: facade,
		LedgerRepo:  repo,
	}, opts)

	return &ledgerFixture{primary: primary, cache: cache, facade: facade, repo: repo, container: container}
}

func (f *ledgerFixture) seed(t *testing.T, store *memory.CollectionStore, collection string, values ...any) {
	t.Helper()
	require.NoError(t, store.Seed(collection, values...))
}

func obligation(id, date, party, partyID string, amount int64, status domain.ObligationStatus) domain.ObligationRecord {
	return domain.ObligationRecord{
		ID:         id,
		Date:       date,
		Customer:   party,
		CustomerID: partyID,
		Vendor:     party,
		VendorID:   partyID,
		Amount:     domain.MoneyFromInt(amount),
		Status:     status,
	}
}
