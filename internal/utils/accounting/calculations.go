package accounting

import (
	"time"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MismatchTolerance is the rounding slack allowed between the net balance and
// the active total before the summary flags a mismatch.
var MismatchTolerance = decimal.NewFromInt(1)

var (
	hundred         = decimal.NewFromInt(100)
	lowBandLimit    = decimal.NewFromInt(50)
	mediumBandLimit = decimal.NewFromInt(80)
)

// SummarizeObligations derives the headline totals of a receivables or
// payables ledger.
//
// NetBalance is GrossTotal minus twice PaidTotal. It only matches ActiveTotal
// when no reversed record carries an amount; the two are reported side by
// side and Mismatch is set when they drift apart by more than the tolerance.
func SummarizeObligations[T any](records []T, amount func(T) decimal.Decimal, status func(T) domain.ObligationStatus) domain.ObligationSummary {
	gross, paid, active := decimal.Zero, decimal.Zero, decimal.Zero
	for _, rec := range records {
		a := amount(rec)
		gross = gross.Add(a)
		switch status(rec) {
		case domain.StatusPaid:
			paid = paid.Add(a)
		case domain.StatusReversed:
		default:
			active = active.Add(a)
		}
	}

	net := gross.Sub(paid.Mul(decimal.NewFromInt(2)))
	return domain.ObligationSummary{
		GrossTotal:  gross,
		PaidTotal:   paid,
		ActiveTotal: active,
		NetBalance:  net,
		Mismatch:    net.Sub(active).Abs().GreaterThan(MismatchTolerance),
	}
}

// SummarizeObligationRecords is SummarizeObligations over stored obligations.
func SummarizeObligationRecords(records []domain.ObligationRecord) domain.ObligationSummary {
	return SummarizeObligations(records,
		func(o domain.ObligationRecord) decimal.Decimal { return o.Amount.Decimal },
		func(o domain.ObligationRecord) domain.ObligationStatus { return o.Status },
	)
}

// SummarizeCashBook totals the in and out sides of a cash or bank book.
func SummarizeCashBook(records []domain.TransactionRecord, kind domain.LedgerKind) domain.CashBookSummary {
	in, out := decimal.Zero, decimal.Zero
	for _, rec := range records {
		in = in.Add(rec.Inflow(kind))
		out = out.Add(rec.Outflow(kind))
	}
	return domain.CashBookSummary{TotalIn: in, TotalOut: out, Balance: in.Sub(out)}
}

// PercentSettled returns the share of gross that is paid, rounded to one
// decimal, and its display band. A zero gross settles nothing.
func PercentSettled(gross, paid decimal.Decimal) (decimal.Decimal, domain.SettlementBand) {
	if !gross.IsPositive() {
		return decimal.Zero, domain.BandLow
	}
	pct := paid.Div(gross).Mul(hundred).Round(1)
	switch {
	case pct.LessThan(lowBandLimit):
		return pct, domain.BandLow
	case pct.LessThan(mediumBandLimit):
		return pct, domain.BandMedium
	default:
		return pct, domain.BandHigh
	}
}

// RecentlySettled sums the amount of paid obligations whose payment date is
// on or after since. Records with no parseable payment date are ignored.
func RecentlySettled(records []domain.ObligationRecord, since time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if rec.Status != domain.StatusPaid {
			continue
		}
		paidAt, ok := domain.ParseLedgerDate(rec.PaymentDate)
		if !ok || paidAt.Before(since) {
			continue
		}
		total = total.Add(rec.Amount.Decimal)
	}
	return total
}

// Progress bundles PercentSettled and RecentlySettled for a summary.
func Progress(summary domain.ObligationSummary, records []domain.ObligationRecord, since time.Time) domain.SettlementProgress {
	pct, band := PercentSettled(summary.GrossTotal, summary.PaidTotal)
	return domain.SettlementProgress{
		Percent:      pct,
		Band:         band,
		RecentlyPaid: RecentlySettled(records, since),
	}
}
