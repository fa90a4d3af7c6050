package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// obligationHandler serves receivables and payables and posts payments
// against them.
type obligationHandler struct {
	kind           domain.ObligationKind
	ledgerService  portssvc.LedgerViewReaderSvc
	paymentService portssvc.PaymentSvcFacade
}

// registerObligationRoutes registers /receivables and /payables. Payment
// routes get the extra middleware, typically the rate limiter.
func registerObligationRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerViewReaderSvc, paymentService portssvc.PaymentSvcFacade, paymentMiddleware ...gin.HandlerFunc) {
	for _, kind := range []domain.ObligationKind{domain.Receivable, domain.Payable} {
		h := &obligationHandler{kind: kind, ledgerService: ledgerService, paymentService: paymentService}

		group := rg.Group("/" + string(kind) + "s")
		group.GET("", h.listObligations)
		group.GET("/:id", h.getObligation)
		group.POST("/:id/payments", append(slices.Clone(paymentMiddleware), h.postPayment)...)
	}
}

// listObligations godoc
// @Summary Receivables or payables ledger
// @Description Reconciled records with whole-ledger totals, settlement progress, party options and one filtered page
// @Tags obligations
// @Produce json
// @Param kind path string true "receivables or payables"
// @Param partyId query string false "Customer or vendor id"
// @Param status query string false "current, overdue, paid or reversed"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Inclusive end date (YYYY-MM-DD)"
// @Param search query string false "Matches id, bill id, party or reference"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param pageToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.ObligationLedgerView
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /{kind} [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("kind", string(h.kind)))

	var filter dto.ObligationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Failed to bind obligation filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	state, err := bindViewState(c, string(h.kind))
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger")
		return
	}

	var view *dto.ObligationLedgerView
	if h.kind == domain.Payable {
		view, err = h.ledgerService.Payables(c.Request.Context(), filter, state)
	} else {
		view, err = h.ledgerService.Receivables(c.Request.Context(), filter, state)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger")
		return
	}
	c.JSON(http.StatusOK, view)
}

// getObligation godoc
// @Summary Get one receivable or payable
// @Tags obligations
// @Produce json
// @Param kind path string true "receivables or payables"
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationDetails
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Failed to load obligation"
// @Security BearerAuth
// @Router /{kind}/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	id := c.Param("id")
	logger := middleware.GetLoggerFromContext(c).With(slog.String("kind", string(h.kind)), slog.String("obligation_id", id))

	details, err := h.ledgerService.GetObligation(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, logger, err, "Failed to load obligation")
		return
	}
	c.JSON(http.StatusOK, details)
}

// postPayment godoc
// @Summary Record a payment against a receivable or payable
// @Description Writes the ledger transaction, marks the obligation paid, adds the party sub-ledger entry and the receipt or payment record
// @Tags obligations
// @Accept json
// @Produce json
// @Param kind path string true "receivables or payables"
// @Param id path string true "Obligation ID"
// @Param payment body dto.PostPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResult
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Obligation not found"
// @Failure 409 {object} map[string]interface{} "Obligation is being paid by another request"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]interface{} "Failed to process payment"
// @Security BearerAuth
// @Router /{kind}/{id}/payments [post]
func (h *obligationHandler) postPayment(c *gin.Context) {
	id := c.Param("id")
	logger := middleware.GetLoggerFromContext(c).With(slog.String("kind", string(h.kind)), slog.String("obligation_id", id))

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "Invalid request format: " + err.Error(),
			"notification": dto.NewNotification(dto.LevelError, "Please check the payment details."),
		})
		return
	}
	req.ObligationID = id

	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		logger = logger.With(slog.String("user_id", userID))
	}
	logger.Info("Received request to post payment", slog.String("method", string(req.Method)), slog.String("amount", req.Amount.String()))

	var (
		result *dto.PaymentResult
		err    error
	)
	if h.kind == domain.Payable {
		result, err = h.paymentService.PostPayablePayment(c.Request.Context(), req)
	} else {
		result, err = h.paymentService.PostReceivablePayment(c.Request.Context(), req)
	}
	if err != nil {
		respondPaymentError(c, logger, err)
		return
	}

	logger.Info("Payment posted", slog.String("settlement_id", result.SettlementID))
	c.JSON(http.StatusCreated, result)
}
