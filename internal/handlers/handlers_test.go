package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/handlers"
	"github.com/SscSPs/ledger_books/internal/middleware"
	"github.com/SscSPs/ledger_books/internal/platform/config"
	"github.com/SscSPs/ledger_books/internal/utils/pagination"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerViewService ---
type MockLedgerViewService struct {
	mock.Mock
}

func (m *MockLedgerViewService) CashLedger(ctx context.Context, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error) {
	args := m.Called(ctx, filter, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionLedgerView), args.Error(1)
}
func (m *MockLedgerViewService) BankLedger(ctx context.Context, filter dto.TransactionFilter, state domain.ViewState) (*dto.TransactionLedgerView, error) {
	args := m.Called(ctx, filter, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionLedgerView), args.Error(1)
}
func (m *MockLedgerViewService) Receivables(ctx context.Context, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error) {
	args := m.Called(ctx, filter, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ObligationLedgerView), args.Error(1)
}
func (m *MockLedgerViewService) Payables(ctx context.Context, filter dto.ObligationFilter, state domain.ViewState) (*dto.ObligationLedgerView, error) {
	args := m.Called(ctx, filter, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ObligationLedgerView), args.Error(1)
}
func (m *MockLedgerViewService) GetObligation(ctx context.Context, kind domain.ObligationKind, id string) (*dto.ObligationDetails, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ObligationDetails), args.Error(1)
}
func (m *MockLedgerViewService) Receipts(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettlementListView), args.Error(1)
}
func (m *MockLedgerViewService) Payments(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SettlementListView), args.Error(1)
}
func (m *MockLedgerViewService) AddCashTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}
func (m *MockLedgerViewService) AddBankTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

var _ portssvc.LedgerViewSvcFacade = (*MockLedgerViewService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) PostReceivablePayment(ctx context.Context, req dto.PostPaymentRequest) (*dto.PaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResult), args.Error(1)
}
func (m *MockPaymentService) PostPayablePayment(ctx context.Context, req dto.PostPaymentRequest) (*dto.PaymentResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResult), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

// --- Test Suite Setup ---
type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	ledgers    *MockLedgerViewService
	payments   *MockPaymentService
	pingers    map[string]handlers.Pinger
	testJWT    string
	testUserID string
	testSecret string
	logSink    *bytes.Buffer
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.ledgers = new(MockLedgerViewService)
	suite.payments = new(MockPaymentService)
	suite.testUserID = "user-1"
	suite.testSecret = "test-secret-for-handlers"
	suite.pingers = map[string]handlers.Pinger{"postgres": fakePinger{}}
	suite.logSink = &bytes.Buffer{}

	claims := &jwt.RegisteredClaims{
		Subject:   suite.testUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.testSecret))
	suite.Require().NoError(err)
	suite.testJWT = signed

	suite.router = suite.buildRouter(handlers.RouteOptions{Pingers: suite.pingers})
}

func (suite *HandlerTestSuite) buildRouter(opts handlers.RouteOptions) *gin.Engine {
	cfg := &config.Config{JWTSecret: suite.testSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{Ledgers: suite.ledgers, Payments: suite.payments}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(suite.logSink, nil))))
	handlers.RegisterRoutes(r, cfg, services, opts)
	return r
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return suite.doOn(suite.router, method, path, body)
}

func (suite *HandlerTestSuite) doOn(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+suite.testJWT)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Ledger routes ---

func (suite *HandlerTestSuite) TestGetCashLedger_BindsFilterAndPaging() {
	filter := dto.TransactionFilter{From: "2026-10-01", To: "2026-10-17", Direction: "in", Search: "acme"}
	view := &dto.TransactionLedgerView{Ledger: domain.CashLedger, Pagination: dto.PageInfo{Page: 2, PageSize: 10}}
	suite.ledgers.On("CashLedger", mock.Anything, filter, domain.ViewState{Page: 2, PageSize: 10}).Return(view, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledgers/cash?from=2026-10-01&to=2026-10-17&type=in&search=acme&page=2&pageSize=10", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("cash", body["ledger"])
	suite.ledgers.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetBankLedger_PageTokenWins() {
	token := pagination.EncodeToken("bank", domain.ViewState{Page: 3, PageSize: 5})
	suite.ledgers.On("BankLedger", mock.Anything, dto.TransactionFilter{}, domain.ViewState{Page: 3, PageSize: 5}).
		Return(&dto.TransactionLedgerView{Ledger: domain.BankLedger}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledgers/bank?page=9&pageToken="+token, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.ledgers.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetLedger_BadQuery() {
	foreignToken := pagination.EncodeToken("receivable", domain.ViewState{Page: 1, PageSize: 20})

	tests := []struct {
		name string
		path string
	}{
		{"token from another ledger", "/api/v1/ledgers/cash?pageToken=" + foreignToken},
		{"garbage token", "/api/v1/ledgers/cash?pageToken=bm9wZQ"},
		{"page size too large", "/api/v1/ledgers/cash?pageSize=500"},
		{"negative page", "/api/v1/ledgers/bank?page=-1"},
		{"day-first date", "/api/v1/ledgers/cash?from=17-10-2026"},
		{"impossible date", "/api/v1/ledgers/bank?to=2026-02-30"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodGet, tt.path, nil)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.ledgers.AssertNotCalled(suite.T(), "CashLedger", mock.Anything, mock.Anything, mock.Anything)
	suite.ledgers.AssertNotCalled(suite.T(), "BankLedger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetCashLedger_ServiceErrors() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", apperrors.NewValidationError("from", "must not be after to"), http.StatusBadRequest, "must not be after to"},
		{"storage", fmt.Errorf("reading cashTransactions: %w", apperrors.ErrStorage), http.StatusInternalServerError, "Failed to load ledger"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "Failed to load ledger"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.ledgers.On("CashLedger", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/ledgers/cash", nil)

			suite.Equal(tt.wantStatus, w.Code)
			suite.Contains(decodeBody(suite.T(), w)["error"], tt.wantError)
		})
	}
}

func (suite *HandlerTestSuite) TestGetCashLedger_RequiresAuth() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledgers/cash", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.ledgers.AssertNotCalled(suite.T(), "CashLedger", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestAddBankTransaction() {
	req := dto.AddTransactionRequest{Date: "2026-10-17", Description: "Transfer in", In: decimal.NewFromInt(250)}
	created := domain.NewLedgerTransaction(domain.BankLedger, decimal.NewFromInt(250), decimal.Zero)
	created.Description = "Transfer in"
	suite.ledgers.On("AddBankTransaction", mock.Anything, mock.MatchedBy(func(r dto.AddTransactionRequest) bool {
		return r.Description == "Transfer in" && r.In.Equal(decimal.NewFromInt(250))
	})).Return(&created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledgers/bank", req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("Transfer in", decodeBody(suite.T(), w)["description"])
	suite.ledgers.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestAddCashTransaction_Invalid() {
	suite.Run("missing description", func() {
		w := suite.do(http.MethodPost, "/api/v1/ledgers/cash", `{"in": 10}`)
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Contains(decodeBody(suite.T(), w)["error"], "Invalid request format")
	})
	suite.Run("rejected by service", func() {
		suite.ledgers.On("AddCashTransaction", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError("amount", "either in or out must be greater than zero")).Once()

		w := suite.do(http.MethodPost, "/api/v1/ledgers/cash", `{"description": "nothing"}`)
		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Contains(decodeBody(suite.T(), w)["error"], "greater than zero")
	})
}

// --- Obligation routes ---

func (suite *HandlerTestSuite) TestListReceivables() {
	filter := dto.ObligationFilter{PartyID: "c-1", Status: "overdue"}
	view := &dto.ObligationLedgerView{
		Kind:          domain.Receivable,
		Notifications: []dto.Notification{dto.NewNotification(dto.LevelWarning, "Totals do not add up")},
	}
	suite.ledgers.On("Receivables", mock.Anything, filter, domain.ViewState{}).Return(view, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/receivables?partyId=c-1&status=overdue", nil)

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("receivable", body["kind"])
	suite.Len(body["notifications"], 1)
	suite.ledgers.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListPayables_UnknownStatus() {
	w := suite.do(http.MethodGet, "/api/v1/payables?status=archived", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledgers.AssertNotCalled(suite.T(), "Payables", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetObligation() {
	suite.Run("found", func() {
		details := &dto.ObligationDetails{
			ObligationRow:   dto.ObligationRow{ObligationRecord: domain.ObligationRecord{ID: "BILL-1", Amount: domain.MoneyFromInt(1200)}},
			FormattedAmount: "Rp1,200.00",
		}
		suite.ledgers.On("GetObligation", mock.Anything, domain.Payable, "BILL-1").Return(details, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/payables/BILL-1", nil)

		suite.Equal(http.StatusOK, w.Code)
		body := decodeBody(suite.T(), w)
		suite.Equal("BILL-1", body["id"])
		suite.Equal("Rp1,200.00", body["formattedAmount"])
	})
	suite.Run("not found", func() {
		suite.ledgers.On("GetObligation", mock.Anything, domain.Receivable, "INV-404").
			Return(nil, fmt.Errorf("receivable INV-404: %w", apperrors.ErrNotFound)).Once()

		w := suite.do(http.MethodGet, "/api/v1/receivables/INV-404", nil)

		suite.Equal(http.StatusNotFound, w.Code)
	})
}

func (suite *HandlerTestSuite) TestPostReceivablePayment() {
	result := &dto.PaymentResult{
		Kind:         domain.Receivable,
		SettlementID: "RCP-1",
		Ledger:       domain.CashLedger,
		Notification: dto.NewNotification(dto.LevelSuccess, "Payment recorded"),
	}
	suite.payments.On("PostReceivablePayment", mock.Anything, mock.MatchedBy(func(r dto.PostPaymentRequest) bool {
		return r.ObligationID == "INV-1" && r.Method == domain.MethodCash && r.Amount.Equal(decimal.NewFromInt(500))
	})).Return(result, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/receivables/INV-1/payments", `{"amount": 500, "paymentMethod": "cash", "date": "2026-10-17"}`)

	suite.Equal(http.StatusCreated, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("RCP-1", body["settlementID"])
	suite.payments.AssertExpectations(suite.T())
	suite.payments.AssertNotCalled(suite.T(), "PostPayablePayment", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostPayablePayment_Errors() {
	tests := []struct {
		name             string
		err              error
		wantStatus       int
		wantError        string
		wantNotification string
	}{
		{
			name:       "validation",
			err:        apperrors.NewValidationError("chequeNumber", "cheque number is required for cheque payments"),
			wantStatus: http.StatusBadRequest,
			wantError:  "cheque number is required",
		},
		{
			name:       "locked",
			err:        fmt.Errorf("payable BILL-1: %w", apperrors.ErrLocked),
			wantStatus: http.StatusConflict,
			wantError:  "locked",
		},
		{
			name: "partial posting",
			err: &apperrors.PostingError{
				Step:      "settlement_record",
				Committed: []string{"ledger", "obligation", "subledger"},
				Err:       errors.New("redis: connection refused"),
			},
			wantStatus:       http.StatusInternalServerError,
			wantError:        "Failed to process payment",
			wantNotification: "check the ledgers",
		},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.payments.On("PostPayablePayment", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/payables/BILL-1/payments", `{"amount": 1200, "paymentMethod": "cheque"}`)

			suite.Equal(tt.wantStatus, w.Code)
			body := decodeBody(suite.T(), w)
			suite.Contains(body["error"], tt.wantError)
			suite.NotContains(w.Body.String(), "connection refused")
			notification, ok := body["notification"].(map[string]any)
			suite.Require().True(ok)
			suite.Equal("error", notification["level"])
			if tt.wantNotification != "" {
				suite.Contains(notification["message"], tt.wantNotification)
			}
		})
	}
}

func (suite *HandlerTestSuite) TestPostPayment_MalformedBody() {
	tests := []struct {
		name string
		body string
	}{
		{"missing method", `{"amount": 500}`},
		{"unknown method", `{"amount": 500, "paymentMethod": "card"}`},
		{"bad date", `{"amount": 500, "paymentMethod": "cash", "date": "yesterday"}`},
		{"not json", `amount=500`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/receivables/INV-1/payments", tt.body)

			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Contains(decodeBody(suite.T(), w), "notification")
		})
	}
	suite.payments.AssertNotCalled(suite.T(), "PostReceivablePayment", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestPostPayment_RateLimited() {
	lim, err := middleware.NewMemoryLimiter("1-M")
	suite.Require().NoError(err)
	r := suite.buildRouter(handlers.RouteOptions{Pingers: suite.pingers, PaymentLimiter: lim})

	suite.payments.On("PostReceivablePayment", mock.Anything, mock.Anything).
		Return(&dto.PaymentResult{SettlementID: "RCP-1"}, nil).Once()

	first := suite.doOn(r, http.MethodPost, "/api/v1/receivables/INV-1/payments", `{"amount": 500, "paymentMethod": "bank"}`)
	second := suite.doOn(r, http.MethodPost, "/api/v1/receivables/INV-1/payments", `{"amount": 500, "paymentMethod": "bank"}`)

	suite.Equal(http.StatusCreated, first.Code)
	suite.Equal(http.StatusTooManyRequests, second.Code)
	suite.payments.AssertNumberOfCalls(suite.T(), "PostReceivablePayment", 1)

	// Views are not throttled.
	suite.ledgers.On("Receivables", mock.Anything, mock.Anything, mock.Anything).Return(&dto.ObligationLedgerView{}, nil)
	for i := 0; i < 3; i++ {
		suite.Equal(http.StatusOK, suite.doOn(r, http.MethodGet, "/api/v1/receivables", nil).Code)
	}
}

// --- Reporting routes ---

func (suite *HandlerTestSuite) TestListReceiptsAndPayments() {
	receipts := &dto.SettlementListView{
		Rows:       []domain.SettlementRecord{{ID: "RCP-2", Date: "2026-10-17"}, {ID: "RCP-1", Date: "2026-10-01"}},
		Pagination: dto.PageInfo{Page: 1, PageSize: 2, TotalItems: 3, TotalPages: 2},
	}
	suite.ledgers.On("Receipts", mock.Anything, domain.ViewState{PageSize: 2}).Return(receipts, nil).Once()
	suite.ledgers.On("Payments", mock.Anything, domain.ViewState{}).Return(nil, fmt.Errorf("load payments: %w", apperrors.ErrStorage)).Once()

	w := suite.do(http.MethodGet, "/api/v1/receipts?pageSize=2", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(decodeBody(suite.T(), w)["rows"], 2)

	w = suite.do(http.MethodGet, "/api/v1/payments", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to list payments", decodeBody(suite.T(), w)["error"])

	suite.ledgers.AssertExpectations(suite.T())
}

// --- Health ---

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		pingers    map[string]handlers.Pinger
		wantStatus int
		wantChecks map[string]any
	}{
		{"no stores", nil, http.StatusOK, map[string]any{}},
		{"all up", map[string]handlers.Pinger{"postgres": fakePinger{}, "redis": fakePinger{}}, http.StatusOK, map[string]any{"postgres": "ok", "redis": "ok"}},
		{"redis down", map[string]handlers.Pinger{"postgres": fakePinger{}, "redis": fakePinger{err: errors.New("dial tcp: refused")}}, http.StatusServiceUnavailable, map[string]any{"postgres": "ok", "redis": "down"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			handlers.RegisterRoutes(r, &config.Config{JWTSecret: "x", IsProduction: true}, &portssvc.ServiceContainer{}, handlers.RouteOptions{Pingers: tt.pingers})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantChecks, decodeBody(t, w)["checks"])
		})
	}
}
