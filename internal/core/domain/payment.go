package domain

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodBank   PaymentMethod = "bank"
	MethodCheque PaymentMethod = "cheque"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBank, MethodCheque:
		return true
	}
	return false
}

// Ledger returns the book the payment lands in. Cheques clear through the bank.
func (m PaymentMethod) Ledger() LedgerKind {
	if m == MethodCash {
		return CashLedger
	}
	return BankLedger
}
