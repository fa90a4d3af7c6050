package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_books/internal/adapters/collections"
	"github.com/SscSPs/ledger_books/internal/adapters/storage/memory"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/SscSPs/ledger_books/internal/core/services"
	"github.com/SscSPs/ledger_books/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMirrorer struct {
	mock.Mock
}

func (m *MockMirrorer) Mirror(ctx context.Context, collection string) (bool, error) {
	args := m.Called(ctx, collection)
	return args.Bool(0), args.Error(1)
}

func TestCacheRefresher_RefreshNow_CopiesPrimaryToCache(t *testing.T) {
	ctx := context.Background()
	primary := memory.NewCollectionStore()
	cache := memory.NewCollectionStore()
	require.NoError(t, primary.Seed(domain.CollectionReceivables, map[string]any{"id": "INV-1", "amount": 100}))
	require.NoError(t, primary.Seed(domain.CollectionCashTransactions, map[string]any{"date": "2026-10-01", "cashIn": 5}))
	require.NoError(t, cache.Seed(domain.CollectionPayables, map[string]any{"id": "BILL-9", "amount": 1}))

	facade, err := collections.NewFacade(primary, cache)
	require.NoError(t, err)

	copied := jobs.NewCacheRefresher(facade, 0, nil).RefreshNow(ctx)
	assert.Equal(t, 2, copied)

	docs, err := cache.Get(ctx, domain.CollectionReceivables)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	// Collections absent from the primary are left alone in the cache.
	docs, err = cache.Get(ctx, domain.CollectionPayables)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	// Nothing flows back into the primary.
	_, err = primary.Get(ctx, domain.CollectionPayables)
	assert.Error(t, err)
}

func TestCacheRefresher_RefreshNow_KeepsCacheOnlyObligations(t *testing.T) {
	ctx := context.Background()
	primary := memory.NewCollectionStore()
	cache := memory.NewCollectionStore()
	require.NoError(t, primary.Seed(domain.CollectionReceivables,
		map[string]any{"id": "INV-1", "amount": 100, "status": "paid"}))
	require.NoError(t, cache.Seed(domain.CollectionReceivables,
		map[string]any{"id": "INV-1", "amount": 100},
		map[string]any{"id": "INV-3", "amount": 40}))

	facade, err := collections.NewFacade(primary, cache)
	require.NoError(t, err)
	reconciler := services.NewReconciler(facade, nil)

	before, err := reconciler.Reconcile(ctx, domain.Receivable)
	require.NoError(t, err)
	require.Len(t, before, 2)

	jobs.NewCacheRefresher(facade, 0, nil).RefreshNow(ctx)

	after, err := reconciler.Reconcile(ctx, domain.Receivable)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, "INV-1", after[0].ID)
	assert.Equal(t, domain.StatusPaid, after[0].Status)
	assert.Equal(t, "INV-3", after[1].ID)

	docs, err := cache.Get(ctx, domain.CollectionReceivables)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"id":"INV-1","amount":100,"status":"paid"}`, string(docs[0]), "primary copy wins")
	assert.JSONEq(t, `{"id":"INV-3","amount":40}`, string(docs[1]))
}

func TestCacheRefresher_RefreshNow_ContinuesAfterFailure(t *testing.T) {
	m := new(MockMirrorer)
	for _, coll := range jobs.RefreshedCollections {
		switch coll {
		case domain.CollectionReceivables:
			m.On("Mirror", mock.Anything, coll).Return(false, errors.New("boom")).Once()
		default:
			m.On("Mirror", mock.Anything, coll).Return(true, nil).Once()
		}
	}

	copied := jobs.NewCacheRefresher(m, 0, nil).RefreshNow(context.Background())
	assert.Equal(t, len(jobs.RefreshedCollections)-1, copied)
	m.AssertExpectations(t)
}

func TestCacheRefresher_DisabledWithZeroInterval(t *testing.T) {
	m := new(MockMirrorer)
	r := jobs.NewCacheRefresher(m, 0, nil)
	r.Start(context.Background())
	r.Stop()
	m.AssertNotCalled(t, "Mirror", mock.Anything, mock.Anything)
}
