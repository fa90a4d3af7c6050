package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_books/internal/core/ports/services"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler lists the receipt and payment records written by postings.
type reportingHandler struct {
	ledgerService portssvc.LedgerViewReaderSvc
}

func newReportingHandler(ls portssvc.LedgerViewReaderSvc) *reportingHandler {
	return &reportingHandler{ledgerService: ls}
}

// registerReportingRoutes registers /receipts and /payments.
func registerReportingRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerViewReaderSvc) {
	h := newReportingHandler(ledgerService)

	rg.GET("/receipts", h.listReceipts)
	rg.GET("/payments", h.listPayments)
}

// listReceipts godoc
// @Summary List receipts
// @Description Receipts written by receivable postings, newest first
// @Tags reports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param pageToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.SettlementListView
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list receipts"
// @Security BearerAuth
// @Router /receipts [get]
func (h *reportingHandler) listReceipts(c *gin.Context) {
	h.listSettlements(c, domain.CollectionReceipts, h.ledgerService.Receipts)
}

// listPayments godoc
// @Summary List payments
// @Description Payments written by payable postings, newest first
// @Tags reports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param pageToken query string false "Opaque token from a previous page"
// @Success 200 {object} dto.SettlementListView
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /payments [get]
func (h *reportingHandler) listPayments(c *gin.Context) {
	h.listSettlements(c, domain.CollectionPayments, h.ledgerService.Payments)
}

type settlementLister func(ctx context.Context, state domain.ViewState) (*dto.SettlementListView, error)

func (h *reportingHandler) listSettlements(c *gin.Context, collection string, list settlementLister) {
	logger := middleware.GetLoggerFromContext(c).With(slog.String("collection", collection))

	state, err := bindViewState(c, collection)
	if err != nil {
		respondError(c, logger, err, "Failed to list "+collection)
		return
	}

	view, err := list(c.Request.Context(), state)
	if err != nil {
		respondError(c, logger, err, "Failed to list "+collection)
		return
	}
	logger.Debug("Listed settlements", slog.Int("rows", len(view.Rows)), slog.Int("page", view.Pagination.Page))
	c.JSON(http.StatusOK, view)
}
