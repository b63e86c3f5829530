package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// dayGroup accumulates the shifts of one calendar day.
type dayGroup struct {
	key   int
	date  time.Time // date of the first shift seen for the day
	total decimal.Decimal
}

// dayKey is year×1000 + day of year, unique across years.
func dayKey(t time.Time) int {
	return t.Year()*1000 + t.YearDay()
}

// DayLabel formats a date as "day/month" with a 1-based month.
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

// AggregatePeriod reduces shifts and expenses that the caller already
// filtered to a date range into one statistics summary. Days are grouped
// and labelled on the calendar of loc; a nil loc means UTC.
func AggregatePeriod(shifts []*entity.Shift, expenses []*entity.Expense, loc *time.Location) valueobject.PeriodStatistics {
	if loc == nil {
		loc = time.UTC
	}

	stats := valueobject.PeriodStatistics{
		TotalGross:         decimal.Zero,
		TotalTips:          decimal.Zero,
		TotalBonus:         decimal.Zero,
		NetIncome:          decimal.Zero,
		TotalExpenses:      decimal.Zero,
		ExpensesByCategory: make(map[entity.ExpenseCategory]decimal.Decimal),
		TotalHours:         decimal.Zero,
		TotalDistance:      decimal.Zero,
		BestDayIncome:      decimal.Zero,
		DailyIncome:        []valueobject.DailyIncome{},
	}

	groups := make(map[int]*dayGroup)
	for _, shift := range shifts {
		net := shift.NetIncome()

		stats.TotalGross = stats.TotalGross.Add(shift.GrossIncome)
		stats.TotalTips = stats.TotalTips.Add(shift.Tips)
		stats.TotalBonus = stats.TotalBonus.Add(shift.Bonus)
		stats.NetIncome = stats.NetIncome.Add(net)
		stats.TotalOrders += shift.OrdersCount
		stats.TotalHours = stats.TotalHours.Add(shift.DecimalHours())
		stats.TotalDistance = stats.TotalDistance.Add(shift.Distance())

		date := shift.Date.In(loc)
		key := dayKey(date)
		group, ok := groups[key]
		if !ok {
			group = &dayGroup{key: key, date: date, total: decimal.Zero}
			groups[key] = group
		}
		group.total = group.total.Add(net)
	}
	stats.TotalShifts = len(shifts)

	for _, expense := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(expense.Amount)
		current, ok := stats.ExpensesByCategory[expense.Category]
		if !ok {
			current = decimal.Zero
		}
		stats.ExpensesByCategory[expense.Category] = current.Add(expense.Amount)
	}

	stats.AvgIncomePerHour = valueobject.SafeDiv(stats.NetIncome, stats.TotalHours)
	stats.AvgOrdersPerShift = valueobject.SafeDiv(decimal.NewFromInt(int64(stats.TotalOrders)), decimal.NewFromInt(int64(stats.TotalShifts)))
	stats.AvgIncomePerOrder = valueobject.SafeDiv(stats.NetIncome, decimal.NewFromInt(int64(stats.TotalOrders)))
	stats.AvgIncomePerKm = valueobject.SafeDiv(stats.NetIncome, stats.TotalDistance)

	ordered := make([]*dayGroup, 0, len(groups))
	for _, group := range groups {
		ordered = append(ordered, group)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].key < ordered[j].key
	})

	// Ascending key order makes the earliest day win ties.
	var best *dayGroup
	for _, group := range ordered {
		if best == nil || group.total.GreaterThan(best.total) {
			best = group
		}
	}
	if best != nil {
		date := best.date
		stats.BestDayDate = &date
		stats.BestDayIncome = best.total
	}

	start := 0
	if len(ordered) > valueobject.DailySeriesLength {
		start = len(ordered) - valueobject.DailySeriesLength
	}
	for _, group := range ordered[start:] {
		stats.DailyIncome = append(stats.DailyIncome, valueobject.DailyIncome{
			Label:  DayLabel(group.date),
			Date:   group.date,
			Amount: group.total,
		})
	}

	return stats
}
