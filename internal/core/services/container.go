package services

import (
	"time"

	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/utils"
)

// ContainerOptions carries the optional collaborators wired by main. Nil
// fields fall back to in-process defaults.
type ContainerOptions struct {
	Reconciler portssvc.ReconcilerSvc
	Locker     portssvc.ObligationLocker
	Publisher  portssvc.EventPublisher
	IDs        SettlementIDGenerator
	Formatter  *utils.CurrencyFormatter
	Clock      utils.Clock
}

func (o ContainerOptions) paymentOptions(postingTimeout time.Duration) []PaymentServiceOption {
	var opts []PaymentServiceOption
	if o.Locker != nil {
		opts = append(opts, WithObligationLocker(o.Locker))
	}
	if o.Publisher != nil {
		opts = append(opts, WithEventPublisher(o.Publisher))
	}
	if o.IDs != nil {
		opts = append(opts, WithIDGenerator(o.IDs))
	}
	if o.Clock != nil {
		opts = append(opts, WithPaymentClock(o.Clock))
	}
	if postingTimeout > 0 {
		opts = append(opts, WithPostingTimeout(postingTimeout))
	}
	return opts
}

func (o ContainerOptions) viewOptions(defaultPageSize int) []LedgerViewServiceOption {
	var opts []LedgerViewServiceOption
	if o.Formatter != nil {
		opts = append(opts, WithCurrencyFormatter(o.Formatter))
	}
	if o.Clock != nil {
		opts = append(opts, WithViewClock(o.Clock))
	}
	if defaultPageSize > 0 {
		opts = append(opts, WithDefaultPageSize(defaultPageSize))
	}
	return opts
}
