package domain

import "github.com/shopspring/decimal"

// LedgerKind selects the cash book or the bank book.
type LedgerKind string

const (
	CashLedger LedgerKind = "cash"
	BankLedger LedgerKind = "bank"
)

// Collection returns the storage collection backing the ledger.
func (k LedgerKind) Collection() string {
	if k == BankLedger {
		return CollectionBankTransactions
	}
	return CollectionCashTransactions
}

// TransactionRecord is one line of the cash or bank book. Cash lines use
// CashIn/CashOut, bank lines use Deposit/Withdrawal.
type TransactionRecord struct {
	Date         string `json:"date"`
	Description  string `json:"description"`
	Reference    string `json:"reference"`
	CashIn       *Money `json:"cashIn,omitempty"`
	CashOut      *Money `json:"cashOut,omitempty"`
	Deposit      *Money `json:"deposit,omitempty"`
	Withdrawal   *Money `json:"withdrawal,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	CustomerID   string `json:"customerId,omitempty"`
	VendorID     string `json:"vendorId,omitempty"`
	ChequeNumber string `json:"chequeNumber,omitempty"`
}

// NewLedgerTransaction fills the amount pair that matches the ledger kind.
func NewLedgerTransaction(kind LedgerKind, in, out decimal.Decimal) TransactionRecord {
	if kind == BankLedger {
		return TransactionRecord{Deposit: MoneyPtr(in), Withdrawal: MoneyPtr(out)}
	}
	return TransactionRecord{CashIn: MoneyPtr(in), CashOut: MoneyPtr(out)}
}

// Inflow is the money-in side for the given ledger.
func (t TransactionRecord) Inflow(kind LedgerKind) decimal.Decimal {
	if kind == BankLedger {
		return OrZero(t.Deposit)
	}
	return OrZero(t.CashIn)
}

// Outflow is the money-out side for the given ledger.
func (t TransactionRecord) Outflow(kind LedgerKind) decimal.Decimal {
	if kind == BankLedger {
		return OrZero(t.Withdrawal)
	}
	return OrZero(t.CashOut)
}

// Delta is the signed effect of the line on the ledger balance.
func (t TransactionRecord) Delta(kind LedgerKind) decimal.Decimal {
	return t.Inflow(kind).Sub(t.Outflow(kind))
}
