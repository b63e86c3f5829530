// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxShiftMinutes is the longest duration a single shift may record.
const MaxShiftMinutes = 24 * 60

var minutesPerHour = decimal.NewFromInt(60)

// Shift represents one logged work session of a driver.
type Shift struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Date          time.Time // Always normalized to midday, see NormalizeShiftDate
	Hours         int
	Minutes       int
	GrossIncome   decimal.Decimal
	Tips          decimal.Decimal
	Bonus         decimal.Decimal
	FuelCost      decimal.Decimal
	OtherExpenses decimal.Decimal
	OrdersCount   int
	Kilometers    decimal.Decimal
	OdometerStart *decimal.Decimal
	OdometerEnd   *decimal.Decimal
	Notes         string
	IsDeleted     bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ShiftInput carries the user-editable fields of a shift.
type ShiftInput struct {
	Date          time.Time
	Hours         int
	Minutes       int
	GrossIncome   decimal.Decimal
	Tips          decimal.Decimal
	Bonus         decimal.Decimal
	FuelCost      decimal.Decimal
	OtherExpenses decimal.Decimal
	OrdersCount   int
	Kilometers    decimal.Decimal
	OdometerStart *decimal.Decimal
	OdometerEnd   *decimal.Decimal
	Notes         string
}

// NewShift creates a new Shift entity for the given user, stamped at now.
func NewShift(userID uuid.UUID, input ShiftInput, now time.Time) *Shift {
	now = now.UTC()

	shift := &Shift{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	shift.Apply(input, now)

	return shift
}

// Apply replaces the editable fields of the shift and sets UpdatedAt to at.
func (s *Shift) Apply(input ShiftInput, at time.Time) {
	s.Date = NormalizeShiftDate(input.Date)
	s.Hours = input.Hours
	s.Minutes = input.Minutes
	s.GrossIncome = input.GrossIncome
	s.Tips = input.Tips
	s.Bonus = input.Bonus
	s.FuelCost = input.FuelCost
	s.OtherExpenses = input.OtherExpenses
	s.OrdersCount = input.OrdersCount
	s.Kilometers = input.Kilometers
	s.OdometerStart = input.OdometerStart
	s.OdometerEnd = input.OdometerEnd
	s.Notes = input.Notes
	s.UpdatedAt = at.UTC()
}

// NetIncome returns gross + tips + bonus. Expenses are tracked separately.
func (s *Shift) NetIncome() decimal.Decimal {
	return s.GrossIncome.Add(s.Tips).Add(s.Bonus)
}

// TotalMinutes returns the worked duration in minutes.
func (s *Shift) TotalMinutes() int {
	return s.Hours*60 + s.Minutes
}

// DecimalHours returns hours + minutes/60.
func (s *Shift) DecimalHours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.Hours)).Add(decimal.NewFromInt(int64(s.Minutes)).Div(minutesPerHour))
}

// Distance resolves the travelled distance: the direct kilometers field when
// positive, otherwise the odometer difference, otherwise zero.
func (s *Shift) Distance() decimal.Decimal {
	if s.Kilometers.IsPositive() {
		return s.Kilometers
	}
	if s.OdometerStart != nil && s.OdometerEnd != nil {
		diff := s.OdometerEnd.Sub(*s.OdometerStart)
		if diff.IsPositive() {
			return diff
		}
	}
	return decimal.Zero
}

// SoftDelete moves the shift to the recycle bin.
func (s *Shift) SoftDelete(at time.Time) {
	at = at.UTC()
	s.IsDeleted = true
	s.DeletedAt = &at
	s.UpdatedAt = at
}

// Restore brings a soft-deleted shift back.
func (s *Shift) Restore(at time.Time) {
	s.IsDeleted = false
	s.DeletedAt = nil
	s.UpdatedAt = at.UTC()
}

// NormalizeShiftDate pins a date to 12:00 of its calendar day so that
// time zone shifts never move it to a neighbouring day.
func NormalizeShiftDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
