package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the cash and bank books.
type ledgerHandler struct {
	ledgerService portssvc.LedgerViewSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerViewSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the cash and bank book routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerViewSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledgers := rg.Group("/ledgers")
	{
		ledgers.GET("/cash", h.getCashLedger)
		ledgers.POST("/cash", h.addCashTransaction)
		ledgers.GET("/bank", h.getBankLedger)
		ledgers.POST("/bank", h.addBankTransaction)
	}
}

// getCashLedger godoc
// @Summary Cash book
// @Description Returns one page of the cash book, newest first, with the running balance and whole-book totals
// @Tags ledgers
// @Produce json
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param type query string false "in or out"
// @Param search query string false "Matches description or reference"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param pageToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.TransactionLedgerView
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /ledgers/cash [get]
func (h *ledgerHandler) getCashLedger(c *gin.Context) {
	h.getLedger(c, domain.CashLedger)
}

// getBankLedger godoc
// @Summary Bank book
// @Description Returns one page of the bank book, newest first, with the running balance and whole-book totals
// @Tags ledgers
// @Produce json
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param type query string false "in or out"
// @Param search query string false "Matches description or reference"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param pageToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.TransactionLedgerView
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /ledgers/bank [get]
func (h *ledgerHandler) getBankLedger(c *gin.Context) {
	h.getLedger(c, domain.BankLedger)
}

func (h *ledgerHandler) getLedger(c *gin.Context, kind domain.LedgerKind) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("ledger", string(kind)))

	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Failed to bind ledger filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	state, err := bindViewState(c, string(kind))
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger")
		return
	}

	var view *dto.TransactionLedgerView
	if kind == domain.BankLedger {
		view, err = h.ledgerService.BankLedger(c.Request.Context(), filter, state)
	} else {
		view, err = h.ledgerService.CashLedger(c.Request.Context(), filter, state)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger")
		return
	}
	c.JSON(http.StatusOK, view)
}

// addCashTransaction godoc
// @Summary Record a cash transaction
// @Description Appends a manual line to the cash book
// @Tags ledgers
// @Accept json
// @Produce json
// @Param transaction body dto.AddTransactionRequest true "Transaction"
// @Success 201 {object} domain.TransactionRecord
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /ledgers/cash [post]
func (h *ledgerHandler) addCashTransaction(c *gin.Context) {
	h.addTransaction(c, domain.CashLedger)
}

// addBankTransaction godoc
// @Summary Record a bank transaction
// @Description Appends a manual line to the bank book
// @Tags ledgers
// @Accept json
// @Produce json
// @Param transaction body dto.AddTransactionRequest true "Transaction"
// @Success 201 {object} domain.TransactionRecord
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Security BearerAuth
// @Router /ledgers/bank [post]
func (h *ledgerHandler) addBankTransaction(c *gin.Context) {
	h.addTransaction(c, domain.BankLedger)
}

func (h *ledgerHandler) addTransaction(c *gin.Context, kind domain.LedgerKind) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("ledger", string(kind)))

	var req dto.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var (
		txn *domain.TransactionRecord
		err error
	)
	if kind == domain.BankLedger {
		txn, err = h.ledgerService.AddBankTransaction(c.Request.Context(), req)
	} else {
		txn, err = h.ledgerService.AddCashTransaction(c.Request.Context(), req)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, txn)
}
