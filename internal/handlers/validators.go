package handlers

import (
	"sync"
	"time"

	"github.com/SscSPs/ledger_books/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the ledger tags to gin's binding validator:
//
//	ledgerdate     a YYYY-MM-DD calendar date
//	paymentmethod  cash, bank or cheque
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("ledgerdate", validLedgerDate)
		_ = v.RegisterValidation("paymentmethod", validPaymentMethod)
	})
}

func validLedgerDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validPaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().String()).Valid()
}
