package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/platform/lock"
	"github.com/SscSPs/ledger_books/internal/utils"
	"github.com/SscSPs/ledger_books/internal/utils/idgen"
	"github.com/shopspring/decimal"
)

// DefaultPostingTimeout bounds the write sequence of one posting.
const DefaultPostingTimeout = 30 * time.Second

// Posting steps, in the order they are written.
const (
	StepLedgerTransaction = "ledger_transaction"
	StepObligationUpdate  = "obligation_update"
	StepSubledgerEntry    = "subledger_entry"
	StepSettlementRecord  = "settlement_record"
)

// SettlementIDGenerator mints settlement ids of the form PREFIX-digits.
type SettlementIDGenerator interface {
	Next(prefix string) string
}

type paymentService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	reconciler portssvc.ReconcilerSvc
	locker     portssvc.ObligationLocker
	ids        SettlementIDGenerator
	publisher  portssvc.EventPublisher
	views      portssvc.LedgerViewReaderSvc

	postingTimeout time.Duration
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithObligationLocker replaces the default in-process locker.
func WithObligationLocker(locker portssvc.ObligationLocker) PaymentServiceOption {
	return func(s *paymentService) {
		s.locker = locker
	}
}

// WithIDGenerator replaces the default settlement id generator.
func WithIDGenerator(ids SettlementIDGenerator) PaymentServiceOption {
	return func(s *paymentService) {
		s.ids = ids
	}
}

// WithEventPublisher adds a publisher for payment-posted events.
func WithEventPublisher(publisher portssvc.EventPublisher) PaymentServiceOption {
	return func(s *paymentService) {
		s.publisher = publisher
	}
}

// WithLedgerViews enables reloading the owning ledger after a posting.
func WithLedgerViews(views portssvc.LedgerViewReaderSvc) PaymentServiceOption {
	return func(s *paymentService) {
		s.views = views
	}
}

// WithPostingTimeout bounds the writes of one posting. Non-positive values
// keep DefaultPostingTimeout.
func WithPostingTimeout(d time.Duration) PaymentServiceOption {
	return func(s *paymentService) {
		if d > 0 {
			s.postingTimeout = d
		}
	}
}

// WithPaymentClock pins the clock used for default dates and timestamps.
func WithPaymentClock(clock utils.Clock) PaymentServiceOption {
	return func(s *paymentService) {
		s.Clock = clock
	}
}

// NewPaymentService creates the payment poster.
func NewPaymentService(repo portsrepo.LedgerRepositoryFacade, reconciler portssvc.ReconcilerSvc, options ...PaymentServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		ledgerRepo:     repo,
		reconciler:     reconciler,
		postingTimeout: DefaultPostingTimeout,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locker == nil {
		svc.locker = lock.NewLocalLocker()
	}
	if svc.ids == nil {
		svc.ids = idgen.MustNew(1)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) PostReceivablePayment(ctx context.Context, req dto.PostPaymentRequest) (*dto.PaymentResult, error) {
	return s.post(ctx, domain.Receivable, req)
}

func (s *paymentService) PostPayablePayment(ctx context.Context, req dto.PostPaymentRequest) (*dto.PaymentResult, error) {
	return s.post(ctx, domain.Payable, req)
}

// validateRequest checks everything that needs no storage access and returns
// the effective payment date.
func (s *paymentService) validateRequest(req dto.PostPaymentRequest) (string, error) {
	if req.ObligationID == "" {
		return "", apperrors.NewValidationError("obligationId", "obligation id is required")
	}
	if !req.Amount.IsPositive() {
		return "", apperrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if !req.Method.Valid() {
		return "", apperrors.NewValidationError("paymentMethod", "payment method must be cash, bank or cheque")
	}
	if req.Method == domain.MethodCheque && req.ChequeNumber == "" {
		return "", apperrors.NewValidationError("chequeNumber", "cheque number is required for cheque payments")
	}
	if req.Date == "" {
		return utils.TodayDate(s.clock()), nil
	}
	date, ok := domain.CalendarDate(req.Date)
	if !ok {
		return "", apperrors.NewValidationError("date", "date must be YYYY-MM-DD")
	}
	return date, nil
}

func (s *paymentService) post(ctx context.Context, kind domain.ObligationKind, req dto.PostPaymentRequest) (*dto.PaymentResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("kind", string(kind)),
		slog.String("obligation_id", req.ObligationID))

	date, err := s.validateRequest(req)
	if err != nil {
		logger.Warn("Payment rejected", slog.String("reason", err.Error()))
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, string(kind)+":"+req.ObligationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to acquire obligation lock", slog.String("obligation_id", req.ObligationID))
		return nil, err
	}
	defer unlock()

	obligation, err := s.reconciler.Find(ctx, kind, req.ObligationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Payment rejected, obligation not found")
		}
		return nil, err
	}
	if obligation.IsSettled() {
		state := "already paid"
		if obligation.Status == domain.StatusReversed {
			state = "reversed"
		}
		return nil, apperrors.NewValidationError("obligationId", fmt.Sprintf("%s %s is %s", kind, obligation.ID, state))
	}

	// Cancellation is honoured up to the first write. After that the caller
	// going away must not leave a half-posted payment.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.postingTimeout)
	defer cancel()

	plan := s.buildPlan(kind, *obligation, req, date)
	result, err := s.execute(ctx, plan)
	if err != nil {
		var postingErr *apperrors.PostingError
		if errors.As(err, &postingErr) {
			s.LogError(ctx, postingErr.Err, "Payment posting failed part way",
				slog.String("kind", string(kind)),
				slog.String("obligation_id", obligation.ID),
				slog.String("settlement_id", plan.settlement.ID),
				slog.String("failed_step", postingErr.Step),
				slog.Any("committed_steps", postingErr.Committed))
		}
		return nil, err
	}

	logger.Info("Payment posted",
		slog.String("settlement_id", plan.settlement.ID),
		slog.String("ledger", string(plan.ledger)),
		slog.String("amount", req.Amount.String()))

	s.publish(ctx, plan)
	result.View = s.reload(ctx, kind)
	return result, nil
}

// postingPlan holds every record of one posting, built before any write.
type postingPlan struct {
	kind        domain.ObligationKind
	obligation  domain.ObligationRecord
	ledger      domain.LedgerKind
	amount      decimal.Decimal
	method      domain.PaymentMethod
	transaction domain.TransactionRecord
	patch       domain.ObligationPatch
	subledger   *domain.SubledgerEntry
	partyID     string
	settlement  domain.SettlementRecord
}

func (s *paymentService) buildPlan(kind domain.ObligationKind, obligation domain.ObligationRecord, req dto.PostPaymentRequest, date string) postingPlan {
	settlementID := s.ids.Next(kind.SettlementPrefix())
	reference := req.Reference
	if reference == "" {
		reference = settlementID
	}
	chequeNumber := ""
	if req.Method == domain.MethodCheque {
		chequeNumber = req.ChequeNumber
	}
	ledger := req.Method.Ledger()
	now := utils.NowTimestamp(s.clock())
	party := obligation.PartyName(kind)
	partyID := obligation.PartyID(kind)

	plan := postingPlan{
		kind:       kind,
		obligation: obligation,
		ledger:     ledger,
		amount:     req.Amount,
		method:     req.Method,
		partyID:    partyID,
		patch: domain.ObligationPatch{
			Status:           domain.StatusPaid,
			PaymentDate:      date,
			PaymentMethod:    req.Method,
			PaymentReference: reference,
			ChequeNumber:     chequeNumber,
		},
	}

	var txn domain.TransactionRecord
	if kind == domain.Payable {
		txn = domain.NewLedgerTransaction(ledger, decimal.Zero, req.Amount)
		txn.Description = "Payment to " + party
		txn.VendorID = partyID
	} else {
		txn = domain.NewLedgerTransaction(ledger, req.Amount, decimal.Zero)
		txn.Description = "Receipt from " + party
		txn.CustomerID = partyID
	}
	txn.Date = date
	txn.Reference = reference
	txn.CreatedAt = now
	txn.ChequeNumber = chequeNumber
	plan.transaction = txn

	settlement := domain.SettlementRecord{
		ID:           settlementID,
		Date:         date,
		Title:        "Payment for " + obligation.ID,
		Amount:       domain.NewMoney(req.Amount),
		Reference:    reference,
		CreatedAt:    now,
		ChequeNumber: chequeNumber,
	}
	if kind == domain.Payable {
		settlement.Vendor = party
		settlement.VendorID = partyID
		settlement.Description = "Made payment for invoice " + obligation.ID
		settlement.Type = "Bank"
		if req.Method == domain.MethodCash {
			settlement.Type = "Cash"
		}
	} else {
		settlement.Customer = party
		settlement.CustomerID = partyID
		settlement.Description = "Received payment for invoice " + obligation.ID
		settlement.ReceiptType = string(ledger)
	}
	plan.settlement = settlement

	if partyID != "" {
		entry := domain.SubledgerEntry{
			Date:      date,
			Type:      "Receipt",
			Debit:     domain.NewMoney(decimal.Zero),
			Credit:    domain.NewMoney(req.Amount),
			Reference: settlementID,
			Balance:   domain.NewMoney(decimal.Zero),
		}
		entry.Description = "Payment received for " + obligation.ID
		if kind == domain.Payable {
			entry.Type = "Payment"
			entry.Description = "Payment made for " + obligation.ID
		}
		plan.subledger = &entry
	}
	return plan
}

// execute writes the plan step by step. Nothing is rolled back: a failure
// reports which steps were already committed. ctx must not be tied to the
// caller's lifetime.
func (s *paymentService) execute(ctx context.Context, plan postingPlan) (*dto.PaymentResult, error) {
	committed := make([]string, 0, 4)
	fail := func(step string, err error) error {
		return &apperrors.PostingError{Step: step, Committed: committed, Err: err}
	}

	if err := s.addLedgerTransaction(ctx, plan.ledger, plan.transaction); err != nil {
		return nil, fail(StepLedgerTransaction, err)
	}
	committed = append(committed, StepLedgerTransaction)

	updated, err := s.updateObligation(ctx, plan.kind, plan.obligation.ID, plan.patch)
	if err != nil {
		return nil, fail(StepObligationUpdate, err)
	}
	committed = append(committed, StepObligationUpdate)

	if plan.subledger != nil {
		if err := s.ledgerRepo.AddPartyTransaction(ctx, plan.partyID, *plan.subledger); err != nil {
			return nil, fail(StepSubledgerEntry, err)
		}
		committed = append(committed, StepSubledgerEntry)
	}

	if err := s.addSettlement(ctx, plan.kind, plan.settlement); err != nil {
		return nil, fail(StepSettlementRecord, err)
	}

	return &dto.PaymentResult{
		Kind:           plan.kind,
		SettlementID:   plan.settlement.ID,
		Ledger:         plan.ledger,
		Obligation:     *updated,
		Transaction:    plan.transaction,
		Settlement:     plan.settlement,
		SubledgerEntry: plan.subledger,
		Notification: dto.NewNotification(dto.LevelSuccess,
			fmt.Sprintf("Payment of %s recorded for %s", utils.FormatCurrency(plan.amount), plan.obligation.ID)),
	}, nil
}

func (s *paymentService) addLedgerTransaction(ctx context.Context, ledger domain.LedgerKind, txn domain.TransactionRecord) error {
	if ledger == domain.BankLedger {
		return s.ledgerRepo.AddBankTransaction(ctx, txn)
	}
	return s.ledgerRepo.AddCashTransaction(ctx, txn)
}

func (s *paymentService) updateObligation(ctx context.Context, kind domain.ObligationKind, id string, patch domain.ObligationPatch) (*domain.ObligationRecord, error) {
	if kind == domain.Payable {
		return s.ledgerRepo.UpdatePayable(ctx, id, patch)
	}
	return s.ledgerRepo.UpdateReceivable(ctx, id, patch)
}

func (s *paymentService) addSettlement(ctx context.Context, kind domain.ObligationKind, settlement domain.SettlementRecord) error {
	if kind == domain.Payable {
		return s.ledgerRepo.AddPayment(ctx, settlement)
	}
	return s.ledgerRepo.AddReceipt(ctx, settlement)
}

func (s *paymentService) publish(ctx context.Context, plan postingPlan) {
	if s.publisher == nil {
		return
	}
	evt := domain.PaymentPostedEvent{
		ObligationKind: plan.kind,
		ObligationID:   plan.obligation.ID,
		SettlementID:   plan.settlement.ID,
		PartyID:        plan.partyID,
		Amount:         plan.amount,
		Method:         plan.method,
		Ledger:         plan.ledger,
		Reference:      plan.settlement.Reference,
		Date:           plan.settlement.Date,
		PostedAt:       plan.settlement.CreatedAt,
	}
	if err := s.publisher.PublishPaymentPosted(ctx, evt); err != nil {
		s.LogError(ctx, err, "Failed to publish payment event", slog.String("settlement_id", evt.SettlementID))
	}
}

func (s *paymentService) reload(ctx context.Context, kind domain.ObligationKind) *dto.ObligationLedgerView {
	if s.views == nil {
		return nil
	}
	var (
		view *dto.ObligationLedgerView
		err  error
	)
	if kind == domain.Payable {
		view, err = s.views.Payables(ctx, dto.ObligationFilter{}, domain.ViewState{})
	} else {
		view, err = s.views.Receivables(ctx, dto.ObligationFilter{}, domain.ViewState{})
	}
	if err != nil {
		s.LogWarn(ctx, "Payment posted but ledger reload failed", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil
	}
	return view
}
