package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Client errors carry the message,
// server errors only the generic text.
func respondError(c *gin.Context, logger *slog.Logger, err error, generic string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(generic, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": generic})
		return
	}
	logger.Warn(generic, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondPaymentError is respondError plus the toast the UI shows.
func respondPaymentError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		var postingErr *apperrors.PostingError
		attrs := []any{slog.String("error", err.Error())}
		if errors.As(err, &postingErr) {
			attrs = append(attrs, slog.String("failed_step", postingErr.Step), slog.Any("committed_steps", postingErr.Committed))
		}
		logger.Error("Failed to process payment", attrs...)
		c.JSON(status, gin.H{
			"error":        "Failed to process payment",
			"notification": dto.NewNotification(dto.LevelError, "Payment could not be recorded. Please check the ledgers before retrying."),
		})
		return
	}
	logger.Warn("Payment rejected", slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{
		"error":        err.Error(),
		"notification": dto.NewNotification(dto.LevelError, err.Error()),
	})
}
