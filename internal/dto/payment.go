package dto

import (
	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostPaymentRequest is the payment a user records against one obligation.
// ObligationID comes from the route, not the body.
type PostPaymentRequest struct {
	ObligationID string               `json:"-"`
	Amount       decimal.Decimal      `json:"amount"`
	Date         string               `json:"date" binding:"omitempty,ledgerdate"`            // Optional: defaults to today
	Method       domain.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"` // cash, bank or cheque
	Reference    string               `json:"reference" binding:"max=120"`                    // Optional: defaults to the settlement id
	ChequeNumber string               `json:"chequeNumber" binding:"max=40"`                  // Required for cheques
}

// PaymentResult reports every record written by a posting plus the reloaded view.
type PaymentResult struct {
	Kind           domain.ObligationKind    `json:"kind"`
	SettlementID   string                   `json:"settlementID"`
	Ledger         domain.LedgerKind        `json:"ledger"`
	Obligation     domain.ObligationRecord  `json:"obligation"`
	Transaction    domain.TransactionRecord `json:"transaction"`
	Settlement     domain.SettlementRecord  `json:"settlement"`
	SubledgerEntry *domain.SubledgerEntry   `json:"subledgerEntry,omitempty"`
	Notification   Notification             `json:"notification"`
	View           *ObligationLedgerView    `json:"view,omitempty"`
}
