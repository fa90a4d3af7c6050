package services

import (
	"time"

	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ContainerOptions) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Main builds the reconciler before the ledger repository so both share
	// one instance.
	container.Reconciler = opts.Reconciler
	if container.Reconciler == nil {
		container.Reconciler = NewReconciler(repos.Collections, nil)
	}

	pageSize := 0
	var postingTimeout time.Duration
	if cfg != nil {
		pageSize = cfg.DefaultPageSize
		postingTimeout = cfg.PostingTimeout
	}
	container.Ledgers = NewLedgerViewService(repos.LedgerRepo, container.Reconciler, opts.viewOptions(pageSize)...)

	paymentOpts := append(opts.paymentOptions(postingTimeout), WithLedgerViews(container.Ledgers))
	container.Payments = NewPaymentService(repos.LedgerRepo, container.Reconciler, paymentOpts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ReconcilerSvc       = (*reconciler)(nil)
	_ portssvc.PaymentSvcFacade    = (*paymentService)(nil)
	_ portssvc.LedgerViewSvcFacade = (*ledgerViewService)(nil)
)
