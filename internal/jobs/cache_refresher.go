package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/jasonlvhit/gocron"
)

// Mirrorer merges a collection from the primary store into the cache store.
type Mirrorer interface {
	Mirror(ctx context.Context, collection string) (bool, error)
}

// RefreshedCollections are the collections kept warm in the cache store.
// Party sub-ledgers are not listed; they are only read through the primary.
var RefreshedCollections = []string{
	domain.CollectionCashTransactions,
	domain.CollectionBankTransactions,
	domain.CollectionReceivables,
	domain.CollectionPayables,
	domain.CollectionReceipts,
	domain.CollectionPayments,
	domain.CollectionCustomers,
	domain.CollectionVendors,
}

// CacheRefresher periodically merges the canonical collections from the
// primary store into the cache so the fallback copy never drifts far.
// Records only the cache holds survive a refresh. It never writes back to
// the primary.
type CacheRefresher struct {
	mirror      Mirrorer
	every       time.Duration
	collections []string
	logger      *slog.Logger

	mu      sync.Mutex
	stop    chan bool
	running bool
}

// NewCacheRefresher creates a refresher. A nil logger uses slog.Default().
func NewCacheRefresher(mirror Mirrorer, every time.Duration, logger *slog.Logger) *CacheRefresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CacheRefresher{
		mirror:      mirror,
		every:       every,
		collections: RefreshedCollections,
		logger:      logger.With(slog.String("job", "cache_refresher")),
	}
}

// RefreshNow mirrors every collection once and returns how many were copied.
// A failing collection is logged and skipped.
func (r *CacheRefresher) RefreshNow(ctx context.Context) int {
	copied := 0
	for _, coll := range r.collections {
		if ctx.Err() != nil {
			break
		}
		ok, err := r.mirror.Mirror(ctx, coll)
		if err != nil {
			r.logger.Warn("Cache refresh failed", slog.String("collection", coll), slog.String("error", err.Error()))
			continue
		}
		if ok {
			copied++
		}
	}
	r.logger.Debug("Cache refresh finished", slog.Int("copied", copied), slog.Int("collections", len(r.collections)))
	return copied
}

// Start schedules RefreshNow every interval until ctx is done or Stop is
// called. A zero interval leaves the refresher disabled.
func (r *CacheRefresher) Start(ctx context.Context) {
	if r.every <= 0 {
		r.logger.Info("Cache refresher disabled")
		return
	}
	minutes := uint64(r.every / time.Minute)
	if minutes == 0 {
		minutes = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}

	s := gocron.NewScheduler()
	s.Every(minutes).Minutes().Do(r.RefreshNow, ctx)
	r.stop = s.Start()
	r.running = true
	r.logger.Info("Cache refresher started", slog.Uint64("every_minutes", minutes))

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
}

// Stop halts the schedule. It is safe to call more than once.
func (r *CacheRefresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.stop <- true
	r.running = false
	r.logger.Info("Cache refresher stopped")
}
