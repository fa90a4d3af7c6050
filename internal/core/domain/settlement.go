package domain

// SettlementRecord is a receipt (money received against a receivable) or a
// payment (money paid against a payable). Receipts carry Customer/ReceiptType,
// payments carry Vendor/Type.
type SettlementRecord struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Customer     string `json:"customer,omitempty"`
	CustomerID   string `json:"customerId,omitempty"`
	Vendor       string `json:"vendor,omitempty"`
	VendorID     string `json:"vendorId,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Amount       Money  `json:"amount"`
	ReceiptType  string `json:"receiptType,omitempty"`
	Type         string `json:"type,omitempty"`
	Reference    string `json:"reference"`
	CreatedAt    string `json:"createdAt"`
	ChequeNumber string `json:"chequeNumber,omitempty"`
}
