package dto

import (
	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a cash or bank ledger. Dates are inclusive
// YYYY-MM-DD bounds.
type TransactionFilter struct {
	From      string `form:"from" binding:"omitempty,ledgerdate"`
	To        string `form:"to" binding:"omitempty,ledgerdate"`
	Direction string `form:"type"` // in|income|deposit or out|expense|withdrawal
	Search    string `form:"search"`
}

// ObligationFilter narrows a receivables or payables ledger.
type ObligationFilter struct {
	PartyID string `form:"partyId"`
	Status  string `form:"status" binding:"omitempty,oneof=current overdue paid reversed"`
	From    string `form:"from" binding:"omitempty,ledgerdate"`
	To      string `form:"to" binding:"omitempty,ledgerdate"`
	Search  string `form:"search"`
}

// DateRange is an inclusive pair of calendar dates.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PageInfo describes the page returned and the controls around it.
type PageInfo struct {
	Page          int    `json:"page"`
	PageSize      int    `json:"pageSize"`
	TotalItems    int    `json:"totalItems"`
	TotalPages    int    `json:"totalPages"`
	StartIndex    int    `json:"startIndex"`
	Window        []int  `json:"window"`
	NextPageToken string `json:"nextPageToken,omitempty"`
	PrevPageToken string `json:"prevPageToken,omitempty"`
}

// TransactionRow is one cash or bank line with its global running balance.
type TransactionRow struct {
	domain.TransactionRecord
	In      decimal.Decimal `json:"in"`
	Out     decimal.Decimal `json:"out"`
	Balance decimal.Decimal `json:"balance"`
}

// TransactionLedgerView is the cash or bank ledger page. Summary covers the
// whole book, rows cover the filtered set.
type TransactionLedgerView struct {
	Ledger           domain.LedgerKind      `json:"ledger"`
	Summary          domain.CashBookSummary `json:"summary"`
	FormattedSummary map[string]string      `json:"formattedSummary"`
	Rows             []TransactionRow       `json:"rows"`
	Pagination       PageInfo               `json:"pagination"`
	Filter           TransactionFilter      `json:"filter"`
	DefaultRange     DateRange              `json:"defaultRange"`
}

// ObligationRow is a receivable or payable with its derived display status.
type ObligationRow struct {
	domain.ObligationRecord
	DisplayStatus domain.DisplayStatus `json:"displayStatus"`
}

// ObligationLedgerView is the receivables or payables page.
type ObligationLedgerView struct {
	Kind             domain.ObligationKind     `json:"kind"`
	Summary          domain.ObligationSummary  `json:"summary"`
	Progress         domain.SettlementProgress `json:"progress"`
	FormattedSummary map[string]string         `json:"formattedSummary"`
	Rows             []ObligationRow           `json:"rows"`
	Pagination       PageInfo                  `json:"pagination"`
	PartyOptions     []domain.Party            `json:"partyOptions"`
	Filter           ObligationFilter          `json:"filter"`
	DefaultRange     DateRange                 `json:"defaultRange"`
	Notifications    []Notification            `json:"notifications,omitempty"`
}

// ObligationDetails is a single obligation as shown in the details dialog.
type ObligationDetails struct {
	ObligationRow
	FormattedAmount string `json:"formattedAmount"`
}

// SettlementListView is a page of receipts or payments.
type SettlementListView struct {
	Rows       []domain.SettlementRecord `json:"rows"`
	Pagination PageInfo                  `json:"pagination"`
}

// AddTransactionRequest records a manual cash or bank line. In and Out map
// to cashIn/cashOut or deposit/withdrawal depending on the book.
type AddTransactionRequest struct {
	Date         string          `json:"date" binding:"omitempty,ledgerdate"`
	Description  string          `json:"description" binding:"required"`
	Reference    string          `json:"reference"`
	In           decimal.Decimal `json:"in"`
	Out          decimal.Decimal `json:"out"`
	CustomerID   string          `json:"customerId"`
	VendorID     string          `json:"vendorId"`
	ChequeNumber string          `json:"chequeNumber"`
}

// ViewQuery is the paging part of a ledger request. A page token, when
// present, wins over page and pageSize.
type ViewQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	PageToken string `form:"pageToken"`
}
