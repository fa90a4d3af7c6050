package domain

import (
	"github.com/shopspring/decimal"
)

// ObligationSummary holds the headline totals of a receivables or payables ledger.
type ObligationSummary struct {
	GrossTotal  decimal.Decimal `json:"grossTotal"`  // every record, paid and reversed included
	PaidTotal   decimal.Decimal `json:"paidTotal"`   // status == paid
	ActiveTotal decimal.Decimal `json:"activeTotal"` // neither paid nor reversed
	NetBalance  decimal.Decimal `json:"netBalance"`  // GrossTotal - 2*PaidTotal
	Mismatch    bool            `json:"mismatch"`    // |NetBalance - ActiveTotal| > 1
}

// CashBookSummary holds the totals of a cash or bank book.
type CashBookSummary struct {
	TotalIn  decimal.Decimal `json:"totalIn"`
	TotalOut decimal.Decimal `json:"totalOut"`
	Balance  decimal.Decimal `json:"balance"`
}

// SettlementBand buckets the settled percentage for display.
type SettlementBand string

const (
	BandLow    SettlementBand = "low"
	BandMedium SettlementBand = "medium"
	BandHigh   SettlementBand = "high"
)

// SettlementProgress is the share of gross obligations already paid.
type SettlementProgress struct {
	Percent      decimal.Decimal `json:"percent"`
	Band         SettlementBand  `json:"band"`
	RecentlyPaid decimal.Decimal `json:"recentlyPaid"` // paid within the trailing window
}
