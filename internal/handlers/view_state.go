package handlers

import (
	"github.com/SscSPs/ledger_books/internal/apperrors"
	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/SscSPs/ledger_books/internal/dto"
	"github.com/SscSPs/ledger_books/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// bindViewState reads page, pageSize or pageToken for the named ledger.
func bindViewState(c *gin.Context, ledger string) (domain.ViewState, error) {
	var q dto.ViewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return domain.ViewState{}, apperrors.NewValidationError("page", err.Error())
	}
	if q.PageToken != "" {
		state, err := pagination.DecodeToken(ledger, q.PageToken)
		if err != nil {
			return domain.ViewState{}, apperrors.NewValidationError("pageToken", err.Error())
		}
		return state, nil
	}
	return domain.ViewState{Page: q.Page, PageSize: q.PageSize}, nil
}
