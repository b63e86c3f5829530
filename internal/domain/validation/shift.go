package validation

import (
	"time"

	"github.com/gigledger/backend/internal/domain/entity"
)

// ValidateShift applies the shift rules in order. The first failing rule wins.
func ValidateShift(shift *entity.Shift, now time.Time) Result {
	income := shift.NetIncome()
	minutes := shift.TotalMinutes()

	if !income.IsPositive() {
		return Invalid(ReasonZeroIncome)
	}
	if income.IsPositive() && minutes <= 0 {
		return Invalid(ReasonZeroDuration)
	}
	if minutes > entity.MaxShiftMinutes {
		return Invalid(ReasonOver24Hours)
	}
	if income.IsPositive() && shift.OrdersCount <= 0 {
		return Invalid(ReasonZeroOrders)
	}
	if shift.OrdersCount > 0 && !shift.Distance().IsPositive() {
		return Invalid(ReasonZeroKilometers)
	}
	if shift.Date.After(now) {
		return Invalid(ReasonFutureDate)
	}
	return Valid()
}
