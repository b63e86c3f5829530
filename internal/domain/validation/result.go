// Package validation holds the entry-time rules for shifts and expenses.
package validation

// Reason identifies why a record was rejected.
type Reason string

const (
	ReasonZeroIncome       Reason = "ZERO_INCOME"
	ReasonZeroDuration     Reason = "ZERO_DURATION"
	ReasonOver24Hours      Reason = "OVER_24_HOURS"
	ReasonZeroOrders       Reason = "ZERO_ORDERS"
	ReasonZeroKilometers   Reason = "ZERO_KILOMETERS"
	ReasonFutureDate       Reason = "FUTURE_DATE"
	ReasonZeroAmount       Reason = "ZERO_AMOUNT"
	ReasonExceedsMaxAmount Reason = "EXCEEDS_MAX_AMOUNT"
)

// Result is either valid or invalid with exactly one reason.
type Result struct {
	reason Reason
}

// Valid returns the valid result.
func Valid() Result {
	return Result{}
}

// Invalid returns a rejection carrying reason.
func Invalid(reason Reason) Result {
	return Result{reason: reason}
}

// IsValid reports whether the record passed every rule.
func (r Result) IsValid() bool {
	return r.reason == ""
}

// Reason returns the rejection reason, empty when valid.
func (r Result) Reason() Reason {
	return r.reason
}
