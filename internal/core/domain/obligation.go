package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ObligationKind tells receivables (owed to us) from payables (owed by us).
type ObligationKind string

const (
	Receivable ObligationKind = "receivable"
	Payable    ObligationKind = "payable"
)

// CanonicalCollection is where the obligation collection is written.
func (k ObligationKind) CanonicalCollection() string {
	if k == Payable {
		return CollectionPayables
	}
	return CollectionReceivables
}

// AliasCollection is the legacy name older clients still write to.
func (k ObligationKind) AliasCollection() string {
	if k == Payable {
		return CollectionTradePayable
	}
	return CollectionTradeReceivable
}

// SettlementCollection holds the receipts or payments for the kind.
func (k ObligationKind) SettlementCollection() string {
	if k == Payable {
		return CollectionPayments
	}
	return CollectionReceipts
}

// SettlementPrefix is the visible prefix of generated settlement ids.
func (k ObligationKind) SettlementPrefix() string {
	if k == Payable {
		return "PAY"
	}
	return "RCP"
}

// PartyDirectory is the collection holding customer or vendor records.
func (k ObligationKind) PartyDirectory() string {
	if k == Payable {
		return CollectionVendors
	}
	return CollectionCustomers
}

// ObligationStatus is the stored status. The empty value means open.
type ObligationStatus string

const (
	StatusOpen     ObligationStatus = ""
	StatusPaid     ObligationStatus = "paid"
	StatusReversed ObligationStatus = "reversed"
)

// DisplayStatus is derived on read and never stored.
type DisplayStatus string

const (
	DisplayCurrent  DisplayStatus = "current"
	DisplayOverdue  DisplayStatus = "overdue"
	DisplayPaid     DisplayStatus = "paid"
	DisplayReversed DisplayStatus = "reversed"
)

// ObligationRecord is a receivable or a payable. Receivables name a customer,
// payables a vendor.
type ObligationRecord struct {
	ID               string           `json:"id"`
	Date             string           `json:"date"`
	Customer         string           `json:"customer,omitempty"`
	CustomerID       string           `json:"customerId,omitempty"`
	Vendor           string           `json:"vendor,omitempty"`
	VendorID         string           `json:"vendorId,omitempty"`
	BillID           string           `json:"billId,omitempty"`
	Reference        string           `json:"reference,omitempty"`
	Description      string           `json:"description,omitempty"`
	DueDate          string           `json:"dueDate,omitempty"`
	Amount           Money            `json:"amount"`
	Status           ObligationStatus `json:"status,omitempty"`
	PaymentDate      string           `json:"paymentDate,omitempty"`
	PaymentMethod    PaymentMethod    `json:"paymentMethod,omitempty"`
	PaymentReference string           `json:"paymentReference,omitempty"`
	ChequeNumber     string           `json:"chequeNumber,omitempty"`
	CreatedAt        string           `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts numeric ids as well as strings. A zero or
// non-scalar id decodes as empty.
func (o *ObligationRecord) UnmarshalJSON(data []byte) error {
	type plain ObligationRecord
	aux := struct {
		*plain
		ID json.RawMessage `json:"id"`
	}{plain: (*plain)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.ID = DocumentID(aux.ID)
	return nil
}

// DocumentID normalizes a raw "id" value. Strings are used as is and
// non-zero numbers by their literal text. Anything else is empty.
func DocumentID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return ""
		}
		return s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n, err := decimal.NewFromString(string(raw))
		if err != nil || n.IsZero() {
			return ""
		}
		return string(raw)
	}
	return ""
}

// IDOf reads the "id" field of a stored document.
func IDOf(doc json.RawMessage) string {
	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if json.Unmarshal(doc, &head) != nil {
		return ""
	}
	return DocumentID(head.ID)
}

// PartyName returns the customer or vendor name for the kind.
func (o ObligationRecord) PartyName(kind ObligationKind) string {
	if kind == Payable {
		return o.Vendor
	}
	return o.Customer
}

// PartyID returns the customer or vendor id for the kind.
func (o ObligationRecord) PartyID(kind ObligationKind) string {
	if kind == Payable {
		return o.VendorID
	}
	return o.CustomerID
}

// IsSettled reports whether the obligation is closed, paid or reversed.
func (o ObligationRecord) IsSettled() bool {
	return o.Status == StatusPaid || o.Status == StatusReversed
}

// DisplayStatus derives the status shown to users. An open obligation whose
// due date lies before today's calendar date is overdue.
func (o ObligationRecord) DisplayStatus(today time.Time) DisplayStatus {
	switch o.Status {
	case StatusPaid:
		return DisplayPaid
	case StatusReversed:
		return DisplayReversed
	}
	if due, ok := CalendarDate(o.DueDate); ok && due < today.UTC().Format(DateLayout) {
		return DisplayOverdue
	}
	return DisplayCurrent
}

// ObligationPatch holds the fields the payment flow writes onto an
// obligation. Empty fields are left untouched when merged.
type ObligationPatch struct {
	Status           ObligationStatus `json:"status,omitempty"`
	PaymentDate      string           `json:"paymentDate,omitempty"`
	PaymentMethod    PaymentMethod    `json:"paymentMethod,omitempty"`
	PaymentReference string           `json:"paymentReference,omitempty"`
	ChequeNumber     string           `json:"chequeNumber,omitempty"`
}

// Apply returns a copy of o with the non-empty patch fields set.
func (p ObligationPatch) Apply(o ObligationRecord) ObligationRecord {
	if p.Status != "" {
		o.Status = p.Status
	}
	if p.PaymentDate != "" {
		o.PaymentDate = p.PaymentDate
	}
	if p.PaymentMethod != "" {
		o.PaymentMethod = p.PaymentMethod
	}
	if p.PaymentReference != "" {
		o.PaymentReference = p.PaymentReference
	}
	if p.ChequeNumber != "" {
		o.ChequeNumber = p.ChequeNumber
	}
	return o
}
