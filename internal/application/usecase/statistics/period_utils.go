package statistics

import (
	"time"

	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// Period is a named date-range preset.
type Period string

const (
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodLast7  Period = "last7"
	PeriodLast30 Period = "last30"
	PeriodCustom Period = "custom"
)

// DateLayout is the accepted format of custom range bounds.
const DateLayout = "2006-01-02"

// IsValid reports whether p is a known preset.
func (p Period) IsValid() bool {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodLast7, PeriodLast30, PeriodCustom:
		return true
	}
	return false
}

// PeriodRange returns the date range of a preset relative to now. Weeks
// start on Monday. Custom periods are built with CustomRange instead.
func PeriodRange(period Period, now time.Time) (valueobject.DateRange, error) {
	switch period {
	case PeriodToday:
		return valueobject.NewDayRange(now, now), nil
	case PeriodWeek:
		return valueobject.NewDayRange(getWeekStartDate(now), now), nil
	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return valueobject.NewDayRange(start, now), nil
	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return valueobject.NewDayRange(start, now), nil
	case PeriodLast7:
		return valueobject.NewDayRange(now.AddDate(0, 0, -6), now), nil
	case PeriodLast30:
		return valueobject.NewDayRange(now.AddDate(0, 0, -29), now), nil
	default:
		return valueobject.DateRange{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidPeriod,
			domainerror.ErrInvalidPeriod.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}
}

// CustomRange parses YYYY-MM-DD bounds in loc and spans whole days.
func CustomRange(startDate, endDate string, loc *time.Location) (valueobject.DateRange, error) {
	if startDate == "" {
		return valueobject.DateRange{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingStartDate,
			domainerror.ErrMissingStartDate.Error(),
			domainerror.ErrMissingStartDate,
		)
	}
	if endDate == "" {
		return valueobject.DateRange{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingEndDate,
			domainerror.ErrMissingEndDate.Error(),
			domainerror.ErrMissingEndDate,
		)
	}

	start, err := time.ParseInLocation(DateLayout, startDate, loc)
	if err != nil {
		return valueobject.DateRange{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			domainerror.ErrInvalidDateFormat.Error(),
			err,
		)
	}
	end, err := time.ParseInLocation(DateLayout, endDate, loc)
	if err != nil {
		return valueobject.DateRange{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			domainerror.ErrInvalidDateFormat.Error(),
			err,
		)
	}
	if end.Before(start) {
		return valueobject.DateRange{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateRange,
			domainerror.ErrInvalidDateRange.Error(),
			domainerror.ErrInvalidDateRange,
		)
	}

	return valueobject.NewDayRange(start, end), nil
}

// ResolveRange picks the preset or custom range for a request.
// An empty period defaults to the current month.
func ResolveRange(period Period, startDate, endDate string, now time.Time) (valueobject.DateRange, error) {
	if period == "" {
		if startDate != "" || endDate != "" {
			period = PeriodCustom
		} else {
			period = PeriodMonth
		}
	}
	if period == PeriodCustom {
		return CustomRange(startDate, endDate, now.Location())
	}
	return PeriodRange(period, now)
}

// getWeekStartDate returns the Monday of the week containing the given date.
func getWeekStartDate(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	daysFromMonday := weekday - 1
	return time.Date(date.Year(), date.Month(), date.Day()-daysFromMonday, 0, 0, 0, 0, date.Location())
}
