package domain

// SubledgerEntry is a line in a customer's or vendor's own history.
// Balance is always written as zero; nothing maintains it.
type SubledgerEntry struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Debit       Money  `json:"debit"`
	Credit      Money  `json:"credit"`
	Reference   string `json:"reference"`
	Balance     Money  `json:"balance"`
}

// Party is a customer or vendor as held in the party directories. Older
// records use "_id" instead of "id".
type Party struct {
	ID       string `json:"id,omitempty"`
	LegacyID string `json:"_id,omitempty"`
	Name     string `json:"name"`
}

// Key returns whichever identifier the record carries.
func (p Party) Key() string {
	if p.ID != "" {
		return p.ID
	}
	return p.LegacyID
}
