package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/utils"
	"github.com/SscSPs/ledger_books/internal/utils/accounting"
	"github.com/SscSPs/ledger_books/internal/utils/pagination"
	"github.com/emirpasic/gods/maps/treemap"
	godsutils "github.com/emirpasic/gods/utils"
	"github.com/shopspring/decimal"
)

// DefaultLookbackDays is both the default filter window and the window of the
// "recently paid" figure.
const DefaultLookbackDays = 30

type ledgerViewService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	reconciler  portssvc.ReconcilerSvc
	formatter   *utils.CurrencyFormatter
	defaultSize int
}

// LedgerViewServiceOption is a functional option for configuring the view service
type LedgerViewServiceOption func(*ledgerViewService)

// WithViewClock pins the clock used for "today".
func WithViewClock(clock utils.Clock) LedgerViewServiceOption {
	return func(s *ledgerViewService) {
		s.Clock = clock
	}
}

// WithCurrencyFormatter sets how summary amounts are rendered.
func WithCurrencyFormatter(formatter *utils.CurrencyFormatter) LedgerViewServiceOption {
	return func(s *ledgerViewService) {
		s.formatter = formatter
	}
}

// WithDefaultPageSize sets the page size used when a request gives none.
func WithDefaultPageSize(size int) LedgerViewServiceOption {
	return func(s *ledgerViewService) {
		s.defaultSize = size
	}
}

// NewLedgerViewService creates the view projection service.
func NewLedgerViewService(repo portsrepo.LedgerRepositoryFacade, reconciler portssvc.ReconcilerSvc, options ...LedgerViewServiceOption) portssvc.LedgerViewSvcFacade {
	svc := &ledgerViewService{
		ledgerRepo:  repo,
		reconciler:  reconciler,
		formatter:   utils.NewCurrencyFormatter("", "en"),
		defaultSize: domain.DefaultPageSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerViewSvcFacade = (*ledgerViewService)(nil)

func (s *ledgerViewService) state(state domain.ViewState) domain.ViewState {
	if state.PageSize <= 0 {
		state.PageSize = s.defaultSize
	}
	return state.Normalize()
}

func (s *ledgerViewService) defaultRange() dto.DateRange {
	return dto.DateRange{
		From: utils.DateDaysAgo(s.clock(), DefaultLookbackDays),
		To:   utils.TodayDate(s.clock()),
	}
}

func pageInfo[T any](ledger string, page pagination.Page[T]) dto.PageInfo {
	info := dto.PageInfo{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		StartIndex: page.StartIndex,
		Window:     pagination.PageWindow(page.Page, page.TotalPages, pagination.DefaultWindow),
	}
	current := domain.ViewState{Page: page.Page, PageSize: page.PageSize}
	if page.HasNext() {
		info.NextPageToken = pagination.EncodeToken(ledger, current.WithPage(page.Page+1))
	}
	if page.HasPrev() {
		info.PrevPageToken = pagination.EncodeToken(ledger, current.WithPage(page.Page-1))
	}
	return info
}

// dateBounds validates optional inclusive YYYY-MM-DD bounds.
func dateBounds(from, to string) (string, string, error) {
	if from != "" {
		if _, ok := domain.ParseLedgerDate(from); !ok || len(from) != len(domain.DateLayout) {
			return "", "", apperrors.NewValidationError("from", "date must be YYYY-MM-DD")
		}
	}
	if to != "" {
		if _, ok := domain.ParseLedgerDate(to); !ok || len(to) != len(domain.DateLayout) {
			return "", "", apperrors.NewValidationError("to", "date must be YYYY-MM-DD")
		}
	}
	if from != "" && to != "" && from > to {
		return "", "", apperrors.NewValidationError("from", "from must not be after to")
	}
	return from, to, nil
}

func withinBounds(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	day, ok := domain.CalendarDate(date)
	if !ok {
		return false
	}
	return (from == "" || day >= from) && (to == "" || day <= to)
}

func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// --- Cash and bank books ---

func (s *ledgerViewService) CashLedger(ctx context.Context, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error) {
	return s.transactionLedger(ctx, domain.CashLedger, filter, state)
}

func (s *ledgerViewService) BankLedger(ctx context.Context, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error) {
	return s.transactionLedger(ctx, domain.BankLedger, filter, state)
}

func (s *ledgerViewService) loadTransactions(ctx context.Context, kind domain.LedgerKind) ([]domain.TransactionRecord, error) {
	if kind == domain.BankLedger {
		return s.ledgerRepo.GetBankTransactions(ctx)
	}
	return s.ledgerRepo.GetCashTransactions(ctx)
}

func filterTransactions(records []domain.TransactionRecord, kind domain.LedgerKind, filter dto.TransactionFilter) ([]domain.TransactionRecord, error) {
	from, to, err := dateBounds(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	direction := strings.ToLower(strings.TrimSpace(filter.Direction))
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]domain.TransactionRecord, 0, len(records))
	for _, rec := range records {
		if !withinBounds(rec.Date, from, to) {
			continue
		}
		switch direction {
		case "in", "income", "deposit":
			if !rec.Inflow(kind).IsPositive() {
				continue
			}
		case "out", "expense", "withdrawal":
			if !rec.Outflow(kind).IsPositive() {
				continue
			}
		}
		if term != "" && !containsFold(term, rec.Description, rec.Reference) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *ledgerViewService) transactionLedger(ctx context.Context, kind domain.LedgerKind, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error) {
	all, err := s.loadTransactions(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger", slog.String("ledger", string(kind)))
		return nil, err
	}
	summary := accounting.SummarizeCashBook(all, kind)

	filtered, err := filterTransactions(all, kind, filter)
	if err != nil {
		return nil, err
	}
	sorted := pagination.SortByDateDesc(filtered,
		func(t domain.TransactionRecord) string { return t.Date },
		func(t domain.TransactionRecord) string { return t.CreatedAt })
	page := pagination.Paginate(sorted, s.state(state))
	balances := accounting.RunningBalances(sorted, page.StartIndex, page.EndIndex(),
		func(t domain.TransactionRecord) decimal.Decimal { return t.Delta(kind) })

	rows := make([]dto.TransactionRow, len(page.Items))
	for i, rec := range page.Items {
		rows[i] = dto.TransactionRow{
			TransactionRecord: rec,
			In:                rec.Inflow(kind),
			Out:               rec.Outflow(kind),
			Balance:           balances[i],
		}
	}

	s.LogDebug(ctx, "Ledger view built",
		slog.String("ledger", string(kind)),
		slog.Int("total", len(all)),
		slog.Int("filtered", len(filtered)),
		slog.Int("page", page.Page))

	return &dto.TransactionLedgerView{
		Ledger:  kind,
		Summary: summary,
		FormattedSummary: map[string]string{
			"totalIn":  s.formatter.Format(summary.TotalIn),
			"totalOut": s.formatter.Format(summary.TotalOut),
			"balance":  s.formatter.Format(summary.Balance),
		},
		Rows:         rows,
		Pagination:   pageInfo(string(kind), page),
		Filter:       filter,
		DefaultRange: s.defaultRange(),
	}, nil
}

func (s *ledgerViewService) AddCashTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.TransactionRecord, error) {
	return s.addTransaction(ctx, domain.CashLedger, req)
}

func (s *ledgerViewService) AddBankTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.TransactionRecord, error) {
	return s.addTransaction(ctx, domain.BankLedger, req)
}

func (s *ledgerViewService) addTransaction(ctx context.Context, kind domain.LedgerKind, req dto.AddTransactionRequest) (*domain.TransactionRecord, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
	}
	if req.In.IsNegative() || req.Out.IsNegative() {
		return nil, apperrors.NewValidationError("amount", "amounts must not be negative")
	}
	if !req.In.IsPositive() && !req.Out.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "either in or out must be greater than zero")
	}
	date := utils.TodayDate(s.clock())
	if req.Date != "" {
		d, ok := domain.CalendarDate(req.Date)
		if !ok {
			return nil, apperrors.NewValidationError("date", "date must be YYYY-MM-DD")
		}
		date = d
	}

	txn := domain.NewLedgerTransaction(kind, req.In, req.Out)
	txn.Date = date
	txn.Description = req.Description
	txn.Reference = req.Reference
	txn.CustomerID = req.CustomerID
	txn.VendorID = req.VendorID
	txn.ChequeNumber = req.ChequeNumber
	txn.CreatedAt = utils.NowTimestamp(s.clock())

	var err error
	if kind == domain.BankLedger {
		err = s.ledgerRepo.AddBankTransaction(ctx, txn)
	} else {
		err = s.ledgerRepo.AddCashTransaction(ctx, txn)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to add ledger transaction", slog.String("ledger", string(kind)))
		return nil, err
	}
	s.LogInfo(ctx, "Ledger transaction added", slog.String("ledger", string(kind)), slog.String("reference", txn.Reference))
	return &txn, nil
}

// --- Receivables and payables ---

func (s *ledgerViewService) Receivables(ctx context.Context, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error) {
	return s.obligationLedger(ctx, domain.Receivable, filter, state)
}

func (s *ledgerViewService) Payables(ctx context.Context, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error) {
	return s.obligationLedger(ctx, domain.Payable, filter, state)
}

func filterObligations(records []domain.ObligationRecord, kind domain.ObligationKind, filter dto.ObligationFilter, today time.Time) ([]domain.ObligationRecord, error) {
	from, to, err := dateBounds(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	status := domain.DisplayStatus(strings.ToLower(strings.TrimSpace(filter.Status)))
	switch status {
	case "", domain.DisplayCurrent, domain.DisplayOverdue, domain.DisplayPaid, domain.DisplayReversed:
	default:
		return nil, apperrors.NewValidationError("status", "status must be current, overdue, paid or reversed")
	}
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]domain.ObligationRecord, 0, len(records))
	for _, rec := range records {
		if filter.PartyID != "" && rec.PartyID(kind) != filter.PartyID {
			continue
		}
		if status != "" && rec.DisplayStatus(today) != status {
			continue
		}
		if !withinBounds(rec.Date, from, to) {
			continue
		}
		if term != "" && !containsFold(term, rec.ID, rec.BillID, rec.PartyName(kind), rec.Reference) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *ledgerViewService) obligationLedger(ctx context.Context, kind domain.ObligationKind, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error) {
	records, err := s.reconciler.Reconcile(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to reconcile obligations", slog.String("kind", string(kind)))
		return nil, err
	}
	now := s.clock().Now()

	summary := accounting.SummarizeObligationRecords(records)
	var notifications []dto.Notification
	if summary.Mismatch {
		s.LogWarn(ctx, "ConsistencyWarning: net balance does not match active total",
			slog.String("kind", string(kind)),
			slog.String("gross_total", summary.GrossTotal.String()),
			slog.String("paid_total", summary.PaidTotal.String()),
			slog.String("active_total", summary.ActiveTotal.String()),
			slog.String("net_balance", summary.NetBalance.String()))
		notifications = append(notifications, dto.NewNotification(dto.LevelWarning,
			fmt.Sprintf("Net balance %s differs from active total %s",
				s.formatter.Format(summary.NetBalance), s.formatter.Format(summary.ActiveTotal))))
	}
	since := now.UTC().AddDate(0, 0, -DefaultLookbackDays)
	progress := accounting.Progress(summary, records, since)

	filtered, err := filterObligations(records, kind, filter, now)
	if err != nil {
		return nil, err
	}
	sorted := pagination.SortByDateDesc(filtered,
		func(o domain.ObligationRecord) string { return o.Date },
		func(o domain.ObligationRecord) string { return o.CreatedAt })
	page := pagination.Paginate(sorted, s.state(state))

	rows := make([]dto.ObligationRow, len(page.Items))
	for i, rec := range page.Items {
		rows[i] = dto.ObligationRow{ObligationRecord: rec, DisplayStatus: rec.DisplayStatus(now)}
	}

	return &dto.ObligationLedgerView{
		Kind:     kind,
		Summary:  summary,
		Progress: progress,
		FormattedSummary: map[string]string{
			"grossTotal":   s.formatter.Format(summary.GrossTotal),
			"paidTotal":    s.formatter.Format(summary.PaidTotal),
			"activeTotal":  s.formatter.Format(summary.ActiveTotal),
			"netBalance":   s.formatter.Format(summary.NetBalance),
			"recentlyPaid": s.formatter.Format(progress.RecentlyPaid),
			"percent":      progress.Percent.StringFixed(1) + "%",
		},
		Rows:          rows,
		Pagination:    pageInfo(string(kind), page),
		PartyOptions:  s.partyOptions(ctx, kind, records),
		Filter:        filter,
		DefaultRange:  s.defaultRange(),
		Notifications: notifications,
	}, nil
}

type partyKey struct {
	name string
	id   string
}

func comparePartyKeys(a, b interface{}) int {
	ka, kb := a.(partyKey), b.(partyKey)
	if c := godsutils.StringComparator(ka.name, kb.name); c != 0 {
		return c
	}
	return godsutils.StringComparator(ka.id, kb.id)
}

// partyOptions resolves the distinct party ids of the records and orders
// them by name. Parties that cannot be resolved or have no name are skipped.
func (s *ledgerViewService) partyOptions(ctx context.Context, kind domain.ObligationKind, records []domain.ObligationRecord) []domain.Party {
	seen := make(map[string]struct{})
	ordered := treemap.NewWith(comparePartyKeys)
	for _, rec := range records {
		id := rec.PartyID(kind)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		party, err := s.ledgerRepo.GetPartyByID(ctx, id)
		if err != nil || party == nil || party.Name == "" {
			s.LogDebug(ctx, "Skipping unresolved party", slog.String("party_id", id))
			continue
		}
		option := domain.Party{ID: party.Key(), Name: party.Name}
		ordered.Put(partyKey{name: party.Name, id: option.ID}, option)
	}

	options := make([]domain.Party, 0, ordered.Size())
	it := ordered.Iterator()
	for it.Next() {
		options = append(options, it.Value().(domain.Party))
	}
	return options
}

func (s *ledgerViewService) GetObligation(ctx context.Context, kind domain.ObligationKind, id string) (*dto.ObligationDetails, error) {
	rec, err := s.reconciler.Find(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return &dto.ObligationDetails{
		ObligationRow:   dto.ObligationRow{ObligationRecord: *rec, DisplayStatus: rec.DisplayStatus(s.clock().Now())},
		FormattedAmount: s.formatter.Format(rec.Amount.Decimal),
	}, nil
}

// --- Settlements ---

func (s *ledgerViewService) Receipts(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error) {
	records, err := s.ledgerRepo.GetReceipts(ctx)
	if err != nil {
		return nil, err
	}
	return s.settlementList(domain.Receivable.SettlementCollection(), records, state), nil
}

func (s *ledgerViewService) Payments(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error) {
	records, err := s.ledgerRepo.GetPayments(ctx)
	if err != nil {
		return nil, err
	}
	return s.settlementList(domain.Payable.SettlementCollection(), records, state), nil
}

func (s *ledgerViewService) settlementList(ledger string, records []domain.SettlementRecord, state domain.ViewState) *dto.SettlementListView {
	sorted := pagination.SortByDateDesc(records,
		func(r domain.SettlementRecord) string { return r.Date },
		func(r domain.SettlementRecord) string { return r.CreatedAt })
	page := pagination.Paginate(sorted, s.state(state))
	return &dto.SettlementListView{Rows: page.Items, Pagination: pageInfo(ledger, page)}
}
