package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

var now = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func validShift() *entity.Shift {
	return &entity.Shift{
		ID:          uuid.New(),
		Date:        time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Hours:       5,
		Minutes:     30,
		GrossIncome: decimal.NewFromInt(50),
		Tips:        decimal.NewFromInt(10),
		Bonus:       decimal.NewFromInt(5),
		OrdersCount: 8,
		Kilometers:  decimal.NewFromInt(45),
	}
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestValidateShift(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *entity.Shift)
		expected Reason
	}{
		{
			name:     "valid shift",
			mutate:   func(s *entity.Shift) {},
			expected: "",
		},
		{
			name: "zero income",
			mutate: func(s *entity.Shift) {
				s.GrossIncome = decimal.Zero
				s.Tips = decimal.Zero
				s.Bonus = decimal.Zero
			},
			expected: ReasonZeroIncome,
		},
		{
			name: "tips alone count as income",
			mutate: func(s *entity.Shift) {
				s.GrossIncome = decimal.Zero
				s.Bonus = decimal.Zero
			},
			expected: "",
		},
		{
			name: "zero duration",
			mutate: func(s *entity.Shift) {
				s.Hours = 0
				s.Minutes = 0
			},
			expected: ReasonZeroDuration,
		},
		{
			name: "exactly 24 hours is allowed",
			mutate: func(s *entity.Shift) {
				s.Hours = 24
				s.Minutes = 0
			},
			expected: "",
		},
		{
			name: "over 24 hours",
			mutate: func(s *entity.Shift) {
				s.Hours = 24
				s.Minutes = 1
			},
			expected: ReasonOver24Hours,
		},
		{
			name: "zero orders",
			mutate: func(s *entity.Shift) {
				s.OrdersCount = 0
			},
			expected: ReasonZeroOrders,
		},
		{
			name: "zero kilometers",
			mutate: func(s *entity.Shift) {
				s.Kilometers = decimal.Zero
			},
			expected: ReasonZeroKilometers,
		},
		{
			name: "odometer difference counts as distance",
			mutate: func(s *entity.Shift) {
				s.Kilometers = decimal.Zero
				s.OdometerStart = dec(1000)
				s.OdometerEnd = dec(1040)
			},
			expected: "",
		},
		{
			name: "reversed odometer gives no distance",
			mutate: func(s *entity.Shift) {
				s.Kilometers = decimal.Zero
				s.OdometerStart = dec(1040)
				s.OdometerEnd = dec(1000)
			},
			expected: ReasonZeroKilometers,
		},
		{
			name: "future date",
			mutate: func(s *entity.Shift) {
				s.Date = now.Add(time.Minute)
			},
			expected: ReasonFutureDate,
		},
		{
			name: "date equal to now is allowed",
			mutate: func(s *entity.Shift) {
				s.Date = now
			},
			expected: "",
		},
		{
			name: "zero income wins over future date",
			mutate: func(s *entity.Shift) {
				s.GrossIncome = decimal.Zero
				s.Tips = decimal.Zero
				s.Bonus = decimal.Zero
				s.Date = now.AddDate(0, 0, 3)
			},
			expected: ReasonZeroIncome,
		},
		{
			name: "zero duration wins over zero orders",
			mutate: func(s *entity.Shift) {
				s.Hours = 0
				s.Minutes = 0
				s.OrdersCount = 0
			},
			expected: ReasonZeroDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift := validShift()
			tt.mutate(shift)

			result := ValidateShift(shift, now)

			if result.Reason() != tt.expected {
				t.Errorf("expected reason %q, got %q", tt.expected, result.Reason())
			}
			if result.IsValid() != (tt.expected == "") {
				t.Errorf("expected valid=%v, got %v", tt.expected == "", result.IsValid())
			}
		})
	}
}

func TestValidateExpense(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		date     time.Time
		expected Reason
	}{
		{name: "valid expense", amount: "25.50", date: now, expected: ""},
		{name: "zero amount", amount: "0", date: now, expected: ReasonZeroAmount},
		{name: "negative amount", amount: "-3", date: now, expected: ReasonZeroAmount},
		{name: "exactly the maximum is valid", amount: "10000.00", date: now, expected: ""},
		{name: "one cent above the maximum", amount: "10000.01", date: now, expected: ReasonExceedsMaxAmount},
		{name: "future date", amount: "10", date: now.Add(time.Second), expected: ReasonFutureDate},
		{name: "zero amount wins over future date", amount: "0", date: now.AddDate(0, 1, 0), expected: ReasonZeroAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := &entity.Expense{
				Amount:   decimal.RequireFromString(tt.amount),
				Category: entity.ExpenseCategoryFuel,
				Date:     tt.date,
			}

			result := ValidateExpense(expense, now)

			if result.Reason() != tt.expected {
				t.Errorf("expected reason %q, got %q", tt.expected, result.Reason())
			}
		})
	}
}
