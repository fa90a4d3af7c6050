package domain

import "github.com/shopspring/decimal"

// PaymentPostedEvent is published after all posting steps have been written.
type PaymentPostedEvent struct {
	ObligationKind ObligationKind  `json:"obligationKind"`
	ObligationID   string          `json:"obligationID"`
	SettlementID   string          `json:"settlementID"`
	PartyID        string          `json:"partyID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	Ledger         LedgerKind      `json:"ledger"`
	Reference      string          `json:"reference"`
	Date           string          `json:"date"`
	PostedAt       string          `json:"postedAt"`
}
