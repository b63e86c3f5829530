package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestShiftNetIncome(t *testing.T) {
	shift := &Shift{
		GrossIncome: decimal.RequireFromString("80.10"),
		Tips:        decimal.RequireFromString("15.20"),
		Bonus:       decimal.RequireFromString("4.70"),
	}

	if !shift.NetIncome().Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100, got %s", shift.NetIncome())
	}
}

func TestShiftDecimalHours(t *testing.T) {
	tests := []struct {
		hours    int
		minutes  int
		expected string
	}{
		{hours: 5, minutes: 30, expected: "5.5"},
		{hours: 0, minutes: 45, expected: "0.75"},
		{hours: 8, minutes: 0, expected: "8"},
		{hours: 0, minutes: 0, expected: "0"},
	}

	for _, tt := range tests {
		shift := &Shift{Hours: tt.hours, Minutes: tt.minutes}
		if !shift.DecimalHours().Equal(decimal.RequireFromString(tt.expected)) {
			t.Errorf("%dh%dm: expected %s, got %s", tt.hours, tt.minutes, tt.expected, shift.DecimalHours())
		}
	}
}

func TestShiftDistance(t *testing.T) {
	start := decimal.NewFromInt(12000)
	end := decimal.NewFromInt(12085)

	tests := []struct {
		name     string
		shift    Shift
		expected int64
	}{
		{
			name:     "direct kilometers win",
			shift:    Shift{Kilometers: decimal.NewFromInt(60), OdometerStart: &start, OdometerEnd: &end},
			expected: 60,
		},
		{
			name:     "odometer difference",
			shift:    Shift{OdometerStart: &start, OdometerEnd: &end},
			expected: 85,
		},
		{
			name:     "missing end reading",
			shift:    Shift{OdometerStart: &start},
			expected: 0,
		},
		{
			name:     "nothing recorded",
			shift:    Shift{},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.shift.Distance().Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("expected %d, got %s", tt.expected, tt.shift.Distance())
			}
		})
	}
}

func TestNormalizeShiftDate(t *testing.T) {
	athens, err := time.LoadLocation("Europe/Athens")
	if err != nil {
		t.Skip("time zone database not available")
	}
	input := time.Date(2025, 6, 1, 0, 30, 0, 0, athens)

	got := NormalizeShiftDate(input)

	if got.Hour() != 12 || got.Day() != 1 || got.Month() != time.June {
		t.Errorf("expected 2025-06-01 12:00, got %v", got)
	}
	if got.UTC().Day() != 1 {
		t.Errorf("expected normalized date to stay on day 1 in UTC, got %v", got.UTC())
	}
}

func TestShiftSoftDeleteAndRestore(t *testing.T) {
	shift := NewShift(uuid.New(), ShiftInput{Date: time.Now()}, time.Now())
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	shift.SoftDelete(at)
	if !shift.IsDeleted || shift.DeletedAt == nil || !shift.DeletedAt.Equal(at) {
		t.Fatalf("expected shift to be soft deleted at %v", at)
	}

	shift.Restore(at.Add(time.Hour))
	if shift.IsDeleted || shift.DeletedAt != nil {
		t.Errorf("expected shift to be restored")
	}
}

func TestParseExpenseCategory(t *testing.T) {
	tests := []struct {
		raw      string
		expected ExpenseCategory
	}{
		{raw: "fuel", expected: ExpenseCategoryFuel},
		{raw: "road-tax", expected: ExpenseCategoryRoadTax},
		{raw: "fines", expected: ExpenseCategoryFines},
		{raw: "snacks", expected: ExpenseCategoryOther},
		{raw: "", expected: ExpenseCategoryOther},
		{raw: "FUEL", expected: ExpenseCategoryOther},
	}

	for _, tt := range tests {
		if got := ParseExpenseCategory(tt.raw); got != tt.expected {
			t.Errorf("%q: expected %s, got %s", tt.raw, tt.expected, got)
		}
	}
}

func TestExpenseCategoriesHaveLabelsAndIcons(t *testing.T) {
	categories := ExpenseCategories()
	if len(categories) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(categories))
	}
	for _, info := range categories {
		if info.Label == "" || info.Icon == "" {
			t.Errorf("category %s is missing display metadata", info.Category)
		}
		if info.Category.Info() != info {
			t.Errorf("category %s: Info() does not match listing", info.Category)
		}
	}
}

func TestUserSettingsDerivedGoals(t *testing.T) {
	daily := decimal.NewFromInt(100)
	weekly := decimal.NewFromInt(650)

	tests := []struct {
		name            string
		settings        UserSettings
		expectedWeekly  *decimal.Decimal
		expectedMonthly *decimal.Decimal
	}{
		{
			name:            "no goals",
			settings:        UserSettings{},
			expectedWeekly:  nil,
			expectedMonthly: nil,
		},
		{
			name:            "derived from daily goal",
			settings:        UserSettings{DailyGoal: &daily},
			expectedWeekly:  ptr(decimal.NewFromInt(700)),
			expectedMonthly: ptr(decimal.NewFromInt(2200)),
		},
		{
			name:            "explicit weekly wins",
			settings:        UserSettings{DailyGoal: &daily, WeeklyGoal: &weekly},
			expectedWeekly:  &weekly,
			expectedMonthly: ptr(decimal.NewFromInt(2200)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertGoal(t, "weekly", tt.expectedWeekly, tt.settings.EffectiveWeeklyGoal())
			assertGoal(t, "monthly", tt.expectedMonthly, tt.settings.EffectiveMonthlyGoal())
		})
	}
}

func TestNewUserSettingsDefaults(t *testing.T) {
	settings := NewUserSettings(uuid.New())

	if !settings.VATRate.Equal(decimal.RequireFromString("0.24")) {
		t.Errorf("expected VAT 0.24, got %s", settings.VATRate)
	}
	if !settings.MonthlyContribution.Equal(decimal.NewFromInt(254)) {
		t.Errorf("expected contribution 254, got %s", settings.MonthlyContribution)
	}
	if settings.Theme != ThemeSystem {
		t.Errorf("expected theme system, got %s", settings.Theme)
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func assertGoal(t *testing.T, name string, expected, got *decimal.Decimal) {
	t.Helper()
	if expected == nil {
		if got != nil {
			t.Errorf("%s: expected nil, got %s", name, got)
		}
		return
	}
	if got == nil || !got.Equal(*expected) {
		t.Errorf("%s: expected %s, got %v", name, expected, got)
	}
}
