package domain

// Collection names used by the browser UI. They are part of the storage
// contract and must not change.
const (
	CollectionCashTransactions = "cashTransactions"
	CollectionBankTransactions = "bankTransactions"
	CollectionReceivables      = "receivables"
	CollectionTradeReceivable  = "tradeReceivable"
	CollectionPayables         = "payables"
	CollectionTradePayable     = "tradePayable"
	CollectionReceipts         = "receipts"
	CollectionPayments         = "payments"
	CollectionCustomers        = "customers"
	CollectionVendors          = "vendors"

	partyTransactionsPrefix = "customerTransactions:"
)

// PartyTransactionsCollection names the sub-ledger collection of one customer or vendor.
func PartyTransactionsCollection(partyID string) string {
	return partyTransactionsPrefix + partyID
}

// StoreKind identifies one of the physical backends behind the storage facade.
type StoreKind string

const (
	StorePrimary StoreKind = "primary"
	StoreCache   StoreKind = "cache"
)

// CollectionSource is one physical place a logical collection may live in.
type CollectionSource struct {
	Store      StoreKind `json:"store"`
	Collection string    `json:"collection"`
}

func (s CollectionSource) String() string {
	return string(s.Store) + ":" + s.Collection
}
