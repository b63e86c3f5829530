package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// MaxExpenseAmount is the largest amount a single expense may carry.
var MaxExpenseAmount = decimal.NewFromInt(10000)

// ValidateExpense applies the expense rules in order. The first failing rule wins.
func ValidateExpense(expense *entity.Expense, now time.Time) Result {
	if !expense.Amount.IsPositive() {
		return Invalid(ReasonZeroAmount)
	}
	if expense.Amount.GreaterThan(MaxExpenseAmount) {
		return Invalid(ReasonExceedsMaxAmount)
	}
	if expense.Date.After(now) {
		return Invalid(ReasonFutureDate)
	}
	return Valid()
}
