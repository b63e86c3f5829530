package statistics

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func decPtr(value string) *decimal.Decimal {
	d := dec(value)
	return &d
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fakeShiftRepository struct {
	adapter.ShiftRepository
	shifts    []*entity.Shift
	err       error
	snapshots chan adapter.ShiftSnapshot
	calls     int
}

func (r *fakeShiftRepository) FindByFilter(_ context.Context, filter adapter.RecordFilter) ([]*entity.Shift, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Shift
	for _, shift := range r.shifts {
		if shift.UserID != filter.UserID || shift.IsDeleted != filter.Deleted {
			continue
		}
		if filter.Range != nil && !filter.Range.Contains(shift.Date) {
			continue
		}
		out = append(out, shift)
	}
	return out, nil
}

func (r *fakeShiftRepository) Observe(_ context.Context, _ adapter.RecordFilter) (<-chan adapter.ShiftSnapshot, error) {
	return r.snapshots, nil
}

type fakeExpenseRepository struct {
	adapter.ExpenseRepository
	expenses  []*entity.Expense
	snapshots chan adapter.ExpenseSnapshot
}

func (r *fakeExpenseRepository) FindByFilter(_ context.Context, filter adapter.RecordFilter) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, expense := range r.expenses {
		if expense.UserID != filter.UserID || expense.IsDeleted != filter.Deleted {
			continue
		}
		if filter.Range != nil && !filter.Range.Contains(expense.Date) {
			continue
		}
		out = append(out, expense)
	}
	return out, nil
}

func (r *fakeExpenseRepository) Observe(_ context.Context, _ adapter.RecordFilter) (<-chan adapter.ExpenseSnapshot, error) {
	return r.snapshots, nil
}

type fakeSettingsRepository struct {
	settings *entity.UserSettings
}

func (r *fakeSettingsRepository) FindByUserID(_ context.Context, _ uuid.UUID) (*entity.UserSettings, error) {
	if r.settings == nil {
		return nil, domainerror.ErrSettingsNotFound
	}
	return r.settings, nil
}

func (r *fakeSettingsRepository) Upsert(_ context.Context, settings *entity.UserSettings) error {
	r.settings = settings
	return nil
}

func (r *fakeSettingsRepository) DeleteByUserID(_ context.Context, _ uuid.UUID) error {
	r.settings = nil
	return nil
}

type memoryCache struct {
	entries map[string]valueobject.PeriodStatistics
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]valueobject.PeriodStatistics)}
}

func cacheKey(userID uuid.UUID, dateRange valueobject.DateRange) string {
	return userID.String() + dateRange.Start.String() + dateRange.End.String()
}

func (c *memoryCache) Get(_ context.Context, userID uuid.UUID, dateRange valueobject.DateRange) (*valueobject.PeriodStatistics, bool, error) {
	stats, ok := c.entries[cacheKey(userID, dateRange)]
	if !ok {
		return nil, false, nil
	}
	return &stats, true, nil
}

func (c *memoryCache) Set(_ context.Context, userID uuid.UUID, dateRange valueobject.DateRange, stats *valueobject.PeriodStatistics) error {
	c.sets++
	c.entries[cacheKey(userID, dateRange)] = *stats
	return nil
}

func (c *memoryCache) InvalidateUser(_ context.Context, _ uuid.UUID) error {
	c.entries = make(map[string]valueobject.PeriodStatistics)
	return nil
}

func TestCalculateShiftEarnings(t *testing.T) {
	shift := &entity.Shift{
		GrossIncome: dec("80"),
		Tips:        dec("15"),
		Bonus:       dec("5"),
		Hours:       8,
		OrdersCount: 20,
		Kilometers:  dec("60"),
	}

	earnings := CalculateShiftEarnings(shift, valueobject.DefaultEarningsParams())

	if !earnings.NetIncome.Equal(dec("100")) {
		t.Errorf("expected net income 100, got %s", earnings.NetIncome)
	}
	if !earnings.VAT.Equal(dec("20.4")) {
		t.Errorf("expected VAT 20.4, got %s", earnings.VAT)
	}
	if !almostEqual(earnings.DailyShare.InexactFloat64(), 11.545) {
		t.Errorf("expected daily share ~11.545, got %s", earnings.DailyShare)
	}
	if !almostEqual(earnings.NetAfterTax.InexactFloat64(), 68.0545) {
		t.Errorf("expected net after tax ~68.0545, got %s", earnings.NetAfterTax)
	}
	if !earnings.IncomePerHour.Equal(dec("12.5")) {
		t.Errorf("expected 12.5 per hour, got %s", earnings.IncomePerHour)
	}
	if !earnings.IncomePerOrder.Equal(dec("5")) {
		t.Errorf("expected 5 per order, got %s", earnings.IncomePerOrder)
	}
	if !almostEqual(earnings.IncomePerKm.InexactFloat64(), 1.667) {
		t.Errorf("expected ~1.667 per km, got %s", earnings.IncomePerKm)
	}
	if !earnings.HoursWorked.Equal(dec("8")) {
		t.Errorf("expected 8 hours, got %s", earnings.HoursWorked)
	}
}

func TestCalculateShiftEarningsZeroShift(t *testing.T) {
	params := valueobject.EarningsParams{VATRate: dec("0.24")}

	earnings := CalculateShiftEarnings(&entity.Shift{}, params)

	for name, value := range map[string]decimal.Decimal{
		"net":         earnings.NetIncome,
		"vat":         earnings.VAT,
		"daily share": earnings.DailyShare,
		"per hour":    earnings.IncomePerHour,
		"per order":   earnings.IncomePerOrder,
		"per km":      earnings.IncomePerKm,
	} {
		if !value.IsZero() {
			t.Errorf("%s: expected 0, got %s", name, value)
		}
	}
}

func TestCalculateShiftEarningsNegativeNetAfterTax(t *testing.T) {
	shift := &entity.Shift{GrossIncome: dec("5"), Hours: 1, OrdersCount: 1, Kilometers: dec("2")}

	earnings := CalculateShiftEarnings(shift, valueobject.DefaultEarningsParams())

	if !earnings.NetAfterTax.IsNegative() {
		t.Errorf("expected negative net after tax, got %s", earnings.NetAfterTax)
	}
}

func TestCalculateVATExcludesTips(t *testing.T) {
	shift := &entity.Shift{GrossIncome: dec("100"), Tips: dec("20"), Bonus: dec("10")}

	vat := CalculateVAT(shift, dec("0.24"))

	if !vat.Equal(dec("26.4")) {
		t.Errorf("expected 26.4, got %s", vat)
	}
}

func TestAggregatePeriodSingleShift(t *testing.T) {
	shifts := []*entity.Shift{{
		Date:        day(2024, time.March, 4),
		GrossIncome: dec("50"),
		Tips:        dec("10"),
		Bonus:       dec("5"),
		Hours:       5,
		Minutes:     30,
		OrdersCount: 8,
		Kilometers:  dec("45"),
	}}

	stats := AggregatePeriod(shifts, nil, time.UTC)

	if !stats.NetIncome.Equal(dec("65")) {
		t.Errorf("expected net income 65, got %s", stats.NetIncome)
	}
	if !stats.TotalHours.Equal(dec("5.5")) {
		t.Errorf("expected 5.5 hours, got %s", stats.TotalHours)
	}
	if !almostEqual(stats.AvgIncomePerHour.InexactFloat64(), 11.818) {
		t.Errorf("expected ~11.818 per hour, got %s", stats.AvgIncomePerHour)
	}
	if stats.TotalOrders != 8 {
		t.Errorf("expected 8 orders, got %d", stats.TotalOrders)
	}
	if stats.TotalShifts != 1 {
		t.Errorf("expected 1 shift, got %d", stats.TotalShifts)
	}
	if !stats.AvgOrdersPerShift.Equal(dec("8")) {
		t.Errorf("expected 8 orders per shift, got %s", stats.AvgOrdersPerShift)
	}
}

func TestAggregatePeriodEmpty(t *testing.T) {
	stats := AggregatePeriod(nil, nil, time.UTC)

	if stats.TotalShifts != 0 || stats.TotalOrders != 0 {
		t.Errorf("expected zero counts, got %d shifts and %d orders", stats.TotalShifts, stats.TotalOrders)
	}
	if !stats.NetIncome.IsZero() || !stats.AvgIncomePerHour.IsZero() || !stats.AvgIncomePerKm.IsZero() {
		t.Errorf("expected zero sums and averages")
	}
	if stats.BestDayDate != nil {
		t.Errorf("expected no best day, got %v", stats.BestDayDate)
	}
	if len(stats.DailyIncome) != 0 {
		t.Errorf("expected empty series, got %d points", len(stats.DailyIncome))
	}
	if len(stats.ExpensesByCategory) != 0 {
		t.Errorf("expected no categories, got %d", len(stats.ExpensesByCategory))
	}
}

func TestAggregatePeriodExpenses(t *testing.T) {
	expenses := []*entity.Expense{
		{Amount: dec("40"), Category: entity.ExpenseCategoryFuel},
		{Amount: dec("25.5"), Category: entity.ExpenseCategoryFuel},
		{Amount: dec("12"), Category: entity.ExpenseCategoryPhone},
	}

	stats := AggregatePeriod(nil, expenses, time.UTC)

	if !stats.TotalExpenses.Equal(dec("77.5")) {
		t.Errorf("expected 77.5, got %s", stats.TotalExpenses)
	}
	if !stats.ExpensesByCategory[entity.ExpenseCategoryFuel].Equal(dec("65.5")) {
		t.Errorf("expected fuel 65.5, got %s", stats.ExpensesByCategory[entity.ExpenseCategoryFuel])
	}
	if !stats.ExpensesByCategory[entity.ExpenseCategoryPhone].Equal(dec("12")) {
		t.Errorf("expected phone 12, got %s", stats.ExpensesByCategory[entity.ExpenseCategoryPhone])
	}
	if !stats.NetProfit().Equal(dec("-77.5")) {
		t.Errorf("expected net profit -77.5, got %s", stats.NetProfit())
	}
}

func TestAggregatePeriodCountsAndDistance(t *testing.T) {
	start := dec("1000")
	end := dec("1030")
	shifts := []*entity.Shift{
		{Date: day(2024, time.May, 1), GrossIncome: dec("30"), Hours: 2, OrdersCount: 5, Kilometers: dec("20")},
		{Date: day(2024, time.May, 1), GrossIncome: dec("20"), Hours: 1, OrdersCount: 3, OdometerStart: &start, OdometerEnd: &end},
	}

	stats := AggregatePeriod(shifts, nil, time.UTC)

	if stats.TotalShifts != len(shifts) {
		t.Errorf("expected %d shifts, got %d", len(shifts), stats.TotalShifts)
	}
	if stats.TotalOrders != 8 {
		t.Errorf("expected 8 orders, got %d", stats.TotalOrders)
	}
	if !stats.TotalDistance.Equal(dec("50")) {
		t.Errorf("expected 50 km, got %s", stats.TotalDistance)
	}
	if !stats.AvgIncomePerKm.Equal(dec("1")) {
		t.Errorf("expected 1 per km, got %s", stats.AvgIncomePerKm)
	}
	if !stats.AvgIncomePerOrder.Equal(dec("6.25")) {
		t.Errorf("expected 6.25 per order, got %s", stats.AvgIncomePerOrder)
	}
}

func TestAggregatePeriodBestDay(t *testing.T) {
	shifts := []*entity.Shift{
		{Date: day(2024, time.June, 3), GrossIncome: dec("40")},
		{Date: day(2024, time.June, 4), GrossIncome: dec("30")},
		{Date: day(2024, time.June, 4), GrossIncome: dec("35")},
		{Date: day(2024, time.June, 5), GrossIncome: dec("60")},
	}

	stats := AggregatePeriod(shifts, nil, time.UTC)

	if stats.BestDayDate == nil || !stats.BestDayDate.Equal(day(2024, time.June, 4)) {
		t.Fatalf("expected best day June 4, got %v", stats.BestDayDate)
	}
	if !stats.BestDayIncome.Equal(dec("65")) {
		t.Errorf("expected best day income 65, got %s", stats.BestDayIncome)
	}
}

func TestAggregatePeriodBestDayTieKeepsEarliest(t *testing.T) {
	shifts := []*entity.Shift{
		{Date: day(2024, time.June, 9), GrossIncome: dec("50")},
		{Date: day(2023, time.December, 31), GrossIncome: dec("50")},
		{Date: day(2024, time.January, 2), GrossIncome: dec("50")},
	}

	stats := AggregatePeriod(shifts, nil, time.UTC)

	if stats.BestDayDate == nil || !stats.BestDayDate.Equal(day(2023, time.December, 31)) {
		t.Errorf("expected earliest day to win tie, got %v", stats.BestDayDate)
	}
}

func TestAggregatePeriodGroupsOnLocalCalendar(t *testing.T) {
	nzdt := time.FixedZone("NZDT", 13*60*60)
	// Midday local dates as the store returns them, in UTC.
	tenth := time.Date(2025, time.January, 10, 12, 0, 0, 0, nzdt).UTC()
	eleventh := time.Date(2025, time.January, 11, 12, 0, 0, 0, nzdt).UTC()
	shifts := []*entity.Shift{
		{Date: tenth, GrossIncome: dec("70")},
		{Date: eleventh, GrossIncome: dec("30")},
		{Date: eleventh, GrossIncome: dec("25")},
	}

	stats := AggregatePeriod(shifts, nil, nzdt)

	if len(stats.DailyIncome) != 2 {
		t.Fatalf("expected 2 days, got %d", len(stats.DailyIncome))
	}
	if stats.DailyIncome[0].Label != "10/1" {
		t.Errorf("expected label 10/1, got %s", stats.DailyIncome[0].Label)
	}
	if stats.DailyIncome[1].Label != "11/1" {
		t.Errorf("expected label 11/1, got %s", stats.DailyIncome[1].Label)
	}
	if stats.BestDayDate == nil {
		t.Fatal("expected a best day")
	}
	if stats.BestDayDate.Day() != 10 || stats.BestDayDate.Month() != time.January {
		t.Errorf("expected best day 10 January, got %v", stats.BestDayDate)
	}
	if !stats.BestDayDate.Equal(tenth) {
		t.Errorf("expected best day instant %v, got %v", tenth, stats.BestDayDate)
	}

	utc := AggregatePeriod(shifts, nil, nil)
	if utc.DailyIncome[0].Label != "9/1" {
		t.Errorf("expected UTC label 9/1, got %s", utc.DailyIncome[0].Label)
	}
}

func TestAggregatePeriodDailySeries(t *testing.T) {
	var shifts []*entity.Shift
	first := day(2024, time.December, 20)
	for i := 0; i < 20; i++ {
		shifts = append(shifts, &entity.Shift{
			Date:        first.AddDate(0, 0, i),
			GrossIncome: decimal.NewFromInt(int64(i + 1)),
		})
	}

	stats := AggregatePeriod(shifts, nil, time.UTC)

	if len(stats.DailyIncome) != valueobject.DailySeriesLength {
		t.Fatalf("expected %d points, got %d", valueobject.DailySeriesLength, len(stats.DailyIncome))
	}
	if stats.DailyIncome[0].Label != "26/12" {
		t.Errorf("expected first label 26/12, got %s", stats.DailyIncome[0].Label)
	}
	last := stats.DailyIncome[len(stats.DailyIncome)-1]
	if last.Label != "8/1" {
		t.Errorf("expected last label 8/1, got %s", last.Label)
	}
	if !last.Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected last amount 20, got %s", last.Amount)
	}
	for i := 1; i < len(stats.DailyIncome); i++ {
		if !stats.DailyIncome[i].Date.After(stats.DailyIncome[i-1].Date) {
			t.Errorf("expected ascending series at index %d", i)
		}
	}
}

func TestAggregatePeriodIdempotent(t *testing.T) {
	shifts := []*entity.Shift{
		{Date: day(2024, time.July, 1), GrossIncome: dec("42.5"), Tips: dec("3"), Hours: 3, OrdersCount: 6, Kilometers: dec("18")},
		{Date: day(2024, time.July, 2), GrossIncome: dec("61"), Bonus: dec("4"), Hours: 4, Minutes: 15, OrdersCount: 9, Kilometers: dec("33")},
	}
	expenses := []*entity.Expense{
		{Amount: dec("20"), Category: entity.ExpenseCategoryFuel},
	}

	first := AggregatePeriod(shifts, expenses, time.UTC)
	second := AggregatePeriod(shifts, expenses, time.UTC)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestProgressRatio(t *testing.T) {
	tests := []struct {
		name     string
		income   string
		goal     *decimal.Decimal
		expected float64
	}{
		{name: "nil goal", income: "50", goal: nil, expected: 0},
		{name: "zero goal", income: "50", goal: decPtr("0"), expected: 0},
		{name: "negative goal", income: "50", goal: decPtr("-10"), expected: 0},
		{name: "half way", income: "50", goal: decPtr("100"), expected: 0.5},
		{name: "over achieved", income: "250", goal: decPtr("100"), expected: 1},
		{name: "negative income", income: "-20", goal: decPtr("100"), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressRatio(dec(tt.income), tt.goal)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEvaluateGoalProgress(t *testing.T) {
	progress := EvaluateGoalProgress(dec("120"), dec("1100"), decPtr("100"), decPtr("2200"))

	if progress.Daily != 1 {
		t.Errorf("expected daily 1, got %v", progress.Daily)
	}
	if progress.Monthly != 0.5 {
		t.Errorf("expected monthly 0.5, got %v", progress.Monthly)
	}
	if !GoalReached(dec("120"), decPtr("100")) {
		t.Errorf("expected daily goal reached")
	}
	if GoalReached(dec("1100"), decPtr("2200")) {
		t.Errorf("expected monthly goal not reached")
	}
	if GoalReached(dec("10"), nil) {
		t.Errorf("expected nil goal never reached")
	}
}

func TestPeriodRange(t *testing.T) {
	// Wednesday
	now := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period Period
		start  time.Time
	}{
		{period: PeriodToday, start: time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)},
		{period: PeriodWeek, start: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)},
		{period: PeriodMonth, start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{period: PeriodYear, start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{period: PeriodLast7, start: time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)},
		{period: PeriodLast30, start: time.Date(2024, time.February, 13, 0, 0, 0, 0, time.UTC)},
	}

	expectedEnd := valueobject.EndOfDay(now)
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := PeriodRange(tt.period, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Start.Equal(tt.start) {
				t.Errorf("expected start %v, got %v", tt.start, got.Start)
			}
			if !got.End.Equal(expectedEnd) {
				t.Errorf("expected end %v, got %v", expectedEnd, got.End)
			}
		})
	}
}

func TestPeriodRangeWeekOnSunday(t *testing.T) {
	sunday := time.Date(2024, time.March, 17, 9, 0, 0, 0, time.UTC)

	got, err := PeriodRange(PeriodWeek, sunday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	if !got.Start.Equal(expected) {
		t.Errorf("expected %v, got %v", expected, got.Start)
	}
}

func TestResolveRange(t *testing.T) {
	now := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    Period
		start     string
		end       string
		errorCode domainerror.StatisticsErrorCode
	}{
		{name: "default month", period: ""},
		{name: "implicit custom", period: "", start: "2024-03-01", end: "2024-03-05"},
		{name: "unknown period", period: "fortnight", errorCode: domainerror.ErrCodeInvalidPeriod},
		{name: "missing start", period: PeriodCustom, end: "2024-03-05", errorCode: domainerror.ErrCodeMissingStartDate},
		{name: "missing end", period: PeriodCustom, start: "2024-03-01", errorCode: domainerror.ErrCodeMissingEndDate},
		{name: "bad format", period: PeriodCustom, start: "03/01/2024", end: "2024-03-05", errorCode: domainerror.ErrCodeInvalidDateFormat},
		{name: "reversed", period: PeriodCustom, start: "2024-03-05", end: "2024-03-01", errorCode: domainerror.ErrCodeInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRange(tt.period, tt.start, tt.end, now)
			if tt.errorCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.End.Before(got.Start) {
					t.Errorf("expected start before end, got %v", got)
				}
				return
			}
			var statsErr *domainerror.StatisticsError
			if !errors.As(err, &statsErr) {
				t.Fatalf("expected StatisticsError, got %v", err)
			}
			if statsErr.Code != tt.errorCode {
				t.Errorf("expected code %s, got %s", tt.errorCode, statsErr.Code)
			}
		})
	}
}

func TestCustomRangeIsInclusive(t *testing.T) {
	got, err := CustomRange("2024-03-01", "2024-03-01", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Contains(time.Date(2024, time.March, 1, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("expected range to include the end of the day")
	}
	if got.Contains(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected range to exclude the next day")
	}
}

func TestGetStatisticsUseCase(t *testing.T) {
	userID := uuid.New()
	otherUser := uuid.New()
	now := time.Date(2024, time.March, 13, 18, 0, 0, 0, time.UTC)
	deletedAt := now

	shifts := &fakeShiftRepository{shifts: []*entity.Shift{
		{UserID: userID, Date: day(2024, time.March, 12), GrossIncome: dec("50"), Hours: 4, OrdersCount: 7, Kilometers: dec("30")},
		{UserID: userID, Date: day(2024, time.March, 13), GrossIncome: dec("70"), Hours: 5, OrdersCount: 9, Kilometers: dec("40")},
		{UserID: userID, Date: day(2024, time.February, 28), GrossIncome: dec("999")},
		{UserID: userID, Date: day(2024, time.March, 10), GrossIncome: dec("500"), IsDeleted: true, DeletedAt: &deletedAt},
		{UserID: otherUser, Date: day(2024, time.March, 13), GrossIncome: dec("300")},
	}}
	expenses := &fakeExpenseRepository{expenses: []*entity.Expense{
		{UserID: userID, Date: day(2024, time.March, 5), Amount: dec("30"), Category: entity.ExpenseCategoryFuel},
	}}
	cache := newMemoryCache()

	uc := NewGetStatisticsUseCase(shifts, expenses, cache, fixedClock{now: now}, time.UTC)

	output, err := uc.Execute(context.Background(), GetStatisticsInput{UserID: userID, Period: PeriodMonth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Cached {
		t.Errorf("expected fresh computation on first call")
	}
	if output.Statistics.TotalShifts != 2 {
		t.Errorf("expected 2 shifts, got %d", output.Statistics.TotalShifts)
	}
	if !output.Statistics.NetIncome.Equal(dec("120")) {
		t.Errorf("expected net income 120, got %s", output.Statistics.NetIncome)
	}
	if !output.Statistics.TotalExpenses.Equal(dec("30")) {
		t.Errorf("expected expenses 30, got %s", output.Statistics.TotalExpenses)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}

	again, err := uc.Execute(context.Background(), GetStatisticsInput{UserID: userID, Period: PeriodMonth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.Cached {
		t.Errorf("expected cached result on second call")
	}
	if shifts.calls != 1 {
		t.Errorf("expected repository to be hit once, got %d", shifts.calls)
	}
}

func TestGetStatisticsUseCaseRepositoryError(t *testing.T) {
	shifts := &fakeShiftRepository{err: errors.New("connection refused")}
	uc := NewGetStatisticsUseCase(shifts, &fakeExpenseRepository{}, newMemoryCache(), fixedClock{now: time.Now()}, time.UTC)

	_, err := uc.Execute(context.Background(), GetStatisticsInput{UserID: uuid.New(), Period: PeriodToday})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestGetDashboardUseCase(t *testing.T) {
	userID := uuid.New()
	// Friday 1 March 2024; the week started in February.
	now := time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC)

	shifts := &fakeShiftRepository{shifts: []*entity.Shift{
		{UserID: userID, Date: day(2024, time.February, 26), GrossIncome: dec("80")},
		{UserID: userID, Date: day(2024, time.March, 1), GrossIncome: dec("100"), Tips: dec("20"), Bonus: dec("10")},
		{UserID: userID, Date: day(2024, time.February, 20), GrossIncome: dec("999")},
	}}
	expenses := &fakeExpenseRepository{expenses: []*entity.Expense{
		{UserID: userID, Date: day(2024, time.March, 1), Amount: dec("15"), Category: entity.ExpenseCategoryFuel},
		{UserID: userID, Date: day(2024, time.February, 29), Amount: dec("40"), Category: entity.ExpenseCategoryFuel},
	}}
	settingsRepo := &fakeSettingsRepository{settings: &entity.UserSettings{
		UserID:              userID,
		VATRate:             dec("0.24"),
		MonthlyContribution: dec("254"),
		DailyGoal:           decPtr("100"),
	}}

	uc := NewGetDashboardUseCase(shifts, expenses, settingsRepo, fixedClock{now: now}, time.UTC)

	output, err := uc.Execute(context.Background(), GetDashboardInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.TodayIncome.Equal(dec("130")) {
		t.Errorf("expected today 130, got %s", output.TodayIncome)
	}
	if output.TodayShifts != 1 {
		t.Errorf("expected 1 shift today, got %d", output.TodayShifts)
	}
	if !output.WeekIncome.Equal(dec("210")) {
		t.Errorf("expected week 210, got %s", output.WeekIncome)
	}
	if !output.MonthIncome.Equal(dec("130")) {
		t.Errorf("expected month 130, got %s", output.MonthIncome)
	}
	if !output.MonthExpenses.Equal(dec("15")) {
		t.Errorf("expected month expenses 15, got %s", output.MonthExpenses)
	}
	if !output.MonthNetProfit.Equal(dec("115")) {
		t.Errorf("expected net profit 115, got %s", output.MonthNetProfit)
	}
	if !output.MonthVAT.Equal(dec("26.4")) {
		t.Errorf("expected VAT 26.4, got %s", output.MonthVAT)
	}
	if output.WeeklyGoal == nil || !output.WeeklyGoal.Equal(dec("700")) {
		t.Errorf("expected derived weekly goal 700, got %v", output.WeeklyGoal)
	}
	if output.MonthlyGoal == nil || !output.MonthlyGoal.Equal(dec("2200")) {
		t.Errorf("expected derived monthly goal 2200, got %v", output.MonthlyGoal)
	}
	if output.Progress.Daily != 1 {
		t.Errorf("expected daily progress 1, got %v", output.Progress.Daily)
	}
	if !output.DailyGoalReached {
		t.Errorf("expected daily goal reached")
	}
	if output.WeeklyGoalReached || output.MonthlyGoalReached {
		t.Errorf("expected weekly and monthly goals not reached")
	}
	if !almostEqual(output.WeeklyProgress, 0.3) {
		t.Errorf("expected weekly progress 0.3, got %v", output.WeeklyProgress)
	}
}

func TestGetDashboardUseCaseDefaultsWithoutSettings(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, time.March, 13, 20, 0, 0, 0, time.UTC)
	shifts := &fakeShiftRepository{shifts: []*entity.Shift{
		{UserID: userID, Date: day(2024, time.March, 13), GrossIncome: dec("100")},
	}}

	uc := NewGetDashboardUseCase(shifts, &fakeExpenseRepository{}, &fakeSettingsRepository{}, fixedClock{now: now}, time.UTC)

	output, err := uc.Execute(context.Background(), GetDashboardInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.MonthVAT.Equal(dec("24")) {
		t.Errorf("expected default VAT 24, got %s", output.MonthVAT)
	}
	if output.DailyGoal != nil || output.MonthlyGoal != nil {
		t.Errorf("expected no goals")
	}
	if output.Progress.Daily != 0 || output.Progress.Monthly != 0 {
		t.Errorf("expected zero progress, got %+v", output.Progress)
	}
}

func TestWatchStatisticsUseCase(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, time.March, 13, 18, 0, 0, 0, time.UTC)
	shiftCh := make(chan adapter.ShiftSnapshot, 2)
	expenseCh := make(chan adapter.ExpenseSnapshot, 1)

	uc := NewWatchStatisticsUseCase(
		&fakeShiftRepository{snapshots: shiftCh},
		&fakeExpenseRepository{snapshots: expenseCh},
		fixedClock{now: now},
		time.UTC,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := uc.Execute(ctx, GetStatisticsInput{UserID: userID, Period: PeriodMonth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shiftCh <- adapter.ShiftSnapshot{Shifts: []*entity.Shift{
		{UserID: userID, Date: day(2024, time.March, 13), GrossIncome: dec("40")},
	}}
	expenseCh <- adapter.ExpenseSnapshot{Expenses: nil}

	first := receive(t, updates)
	if !first.Statistics.NetIncome.Equal(dec("40")) {
		t.Errorf("expected 40, got %s", first.Statistics.NetIncome)
	}

	shiftCh <- adapter.ShiftSnapshot{Shifts: []*entity.Shift{
		{UserID: userID, Date: day(2024, time.March, 13), GrossIncome: dec("40")},
		{UserID: userID, Date: day(2024, time.March, 12), GrossIncome: dec("25")},
	}}

	second := receive(t, updates)
	if !second.Statistics.NetIncome.Equal(dec("65")) {
		t.Errorf("expected 65, got %s", second.Statistics.NetIncome)
	}
	if second.Statistics.TotalShifts != 2 {
		t.Errorf("expected 2 shifts, got %d", second.Statistics.TotalShifts)
	}

	cancel()
	select {
	case _, ok := <-updates:
		if ok {
			t.Errorf("expected channel to be closed after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func receive(t *testing.T, updates <-chan StatisticsUpdate) StatisticsUpdate {
	t.Helper()
	select {
	case update, ok := <-updates:
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		if update.Err != nil {
			t.Fatalf("unexpected update error: %v", update.Err)
		}
		return update
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
	return StatisticsUpdate{}
}
