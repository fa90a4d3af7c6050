package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/SscSPs/ledger_books/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rec(amount int64, status domain.ObligationStatus) domain.ObligationRecord {
	return domain.ObligationRecord{ID: "x", Amount: domain.MoneyFromInt(amount), Status: status}
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSummarizeObligationRecords(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.ObligationRecord
		gross    int64
		paid     int64
		active   int64
		net      int64
		mismatch bool
	}{
		{
			name:    "paid records make net diverge",
			records: []domain.ObligationRecord{rec(700, domain.StatusOpen), rec(300, domain.StatusPaid)},
			gross:   1000, paid: 300, active: 700, net: 400, mismatch: true,
		},
		{
			name:    "nothing paid",
			records: []domain.ObligationRecord{rec(600, domain.StatusOpen), rec(400, domain.StatusOpen)},
			gross:   1000, paid: 0, active: 1000, net: 1000,
		},
		{
			name:    "reversed counts in gross only",
			records: []domain.ObligationRecord{rec(500, domain.StatusOpen), rec(200, domain.StatusReversed)},
			gross:   700, paid: 0, active: 500, net: 700, mismatch: true,
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := accounting.SummarizeObligationRecords(tt.records)
			assert.True(t, s.GrossTotal.Equal(d(tt.gross)), "gross %s", s.GrossTotal)
			assert.True(t, s.PaidTotal.Equal(d(tt.paid)), "paid %s", s.PaidTotal)
			assert.True(t, s.ActiveTotal.Equal(d(tt.active)), "active %s", s.ActiveTotal)
			assert.True(t, s.NetBalance.Equal(d(tt.net)), "net %s", s.NetBalance)
			assert.Equal(t, tt.mismatch, s.Mismatch)
		})
	}
}

func TestSummarize_ToleratesRounding(t *testing.T) {
	s := accounting.SummarizeObligations([]decimal.Decimal{decimal.RequireFromString("0.5")},
		func(v decimal.Decimal) decimal.Decimal { return v },
		func(decimal.Decimal) domain.ObligationStatus { return domain.StatusReversed })
	assert.False(t, s.Mismatch, "a drift of 0.5 is within tolerance")
}

func TestSummarizeCashBook(t *testing.T) {
	a := domain.NewLedgerTransaction(domain.BankLedger, d(250), decimal.Zero)
	b := domain.NewLedgerTransaction(domain.BankLedger, decimal.Zero, d(100))
	// A cash-shaped line contributes nothing to the bank book.
	c := domain.NewLedgerTransaction(domain.CashLedger, d(999), decimal.Zero)

	s := accounting.SummarizeCashBook([]domain.TransactionRecord{a, b, c}, domain.BankLedger)
	assert.True(t, s.TotalIn.Equal(d(250)))
	assert.True(t, s.TotalOut.Equal(d(100)))
	assert.True(t, s.Balance.Equal(d(150)))
}

func TestPercentSettled(t *testing.T) {
	tests := []struct {
		gross, paid int64
		percent     string
		band        domain.SettlementBand
	}{
		{0, 0, "0", domain.BandLow},
		{1000, 300, "30", domain.BandLow},
		{1000, 500, "50", domain.BandMedium},
		{3, 2, "66.7", domain.BandMedium},
		{1000, 800, "80", domain.BandHigh},
		{1000, 1000, "100", domain.BandHigh},
	}
	for _, tt := range tests {
		pct, band := accounting.PercentSettled(d(tt.gross), d(tt.paid))
		assert.Equal(t, tt.percent, pct.String(), "%d/%d", tt.paid, tt.gross)
		assert.Equal(t, tt.band, band, "%d/%d", tt.paid, tt.gross)
	}
}

func TestRecentlySettled(t *testing.T) {
	since := time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC)
	recent := rec(120, domain.StatusPaid)
	recent.PaymentDate = "2026-10-01"
	stale := rec(80, domain.StatusPaid)
	stale.PaymentDate = "2026-08-01"
	undated := rec(50, domain.StatusPaid)
	open := rec(70, domain.StatusOpen)
	open.PaymentDate = "2026-10-02"

	got := accounting.RecentlySettled([]domain.ObligationRecord{recent, stale, undated, open}, since)
	assert.True(t, got.Equal(d(120)), "got %s", got)
}

func TestRunningBalances(t *testing.T) {
	deltas := []int64{10, -3, 5, 7, -2}
	delta := func(v int64) decimal.Decimal { return d(v) }

	tests := []struct {
		name       string
		start, end int
		want       []int64
	}{
		{"whole slice", 0, 5, []int64{10, 7, 12, 19, 17}},
		{"seeded by earlier items", 2, 4, []int64{12, 19}},
		{"end clamps", 3, 99, []int64{19, 17}},
		{"empty range", 4, 4, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.RunningBalances(deltas, tt.start, tt.end, delta)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.True(t, got[i].Equal(d(tt.want[i])), "index %d = %s", i, got[i])
			}
		})
	}
}
