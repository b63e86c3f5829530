package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// ShiftRequest represents the request body for creating or replacing a shift.
type ShiftRequest struct {
	Date          string           `json:"date" binding:"required"`
	Hours         int              `json:"hours" binding:"min=0"`
	Minutes       int              `json:"minutes" binding:"min=0,max=59"`
	GrossIncome   decimal.Decimal  `json:"gross_income"`
	Tips          decimal.Decimal  `json:"tips"`
	Bonus         decimal.Decimal  `json:"bonus"`
	FuelCost      decimal.Decimal  `json:"fuel_cost"`
	OtherExpenses decimal.Decimal  `json:"other_expenses"`
	OrdersCount   int              `json:"orders_count" binding:"min=0"`
	Kilometers    decimal.Decimal  `json:"kilometers"`
	OdometerStart *decimal.Decimal `json:"odometer_start"`
	OdometerEnd   *decimal.Decimal `json:"odometer_end"`
	Notes         string           `json:"notes" binding:"max=500"`
}

// ToInput converts the request into a shift input with the date in loc.
func (r ShiftRequest) ToInput(loc *time.Location) (entity.ShiftInput, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return entity.ShiftInput{}, err
	}

	return entity.ShiftInput{
		Date:          date,
		Hours:         r.Hours,
		Minutes:       r.Minutes,
		GrossIncome:   r.GrossIncome,
		Tips:          r.Tips,
		Bonus:         r.Bonus,
		FuelCost:      r.FuelCost,
		OtherExpenses: r.OtherExpenses,
		OrdersCount:   r.OrdersCount,
		Kilometers:    r.Kilometers,
		OdometerStart: r.OdometerStart,
		OdometerEnd:   r.OdometerEnd,
		Notes:         r.Notes,
	}, nil
}

// ShiftResponse represents a shift in API responses.
type ShiftResponse struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	Hours         int        `json:"hours"`
	Minutes       int        `json:"minutes"`
	GrossIncome   float64    `json:"gross_income"`
	Tips          float64    `json:"tips"`
	Bonus         float64    `json:"bonus"`
	FuelCost      float64    `json:"fuel_cost"`
	OtherExpenses float64    `json:"other_expenses"`
	OrdersCount   int        `json:"orders_count"`
	Kilometers    float64    `json:"kilometers"`
	OdometerStart *float64   `json:"odometer_start"`
	OdometerEnd   *float64   `json:"odometer_end"`
	Notes         string     `json:"notes"`
	NetIncome     float64    `json:"net_income"`
	Distance      float64    `json:"distance"`
	IsDeleted     bool       `json:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// EarningsResponse represents the earnings breakdown of a shift.
type EarningsResponse struct {
	GrossIncome            float64 `json:"gross_income"`
	Tips                   float64 `json:"tips"`
	Bonus                  float64 `json:"bonus"`
	NetIncome              float64 `json:"net_income"`
	VAT                    float64 `json:"vat"`
	DailyContributionShare float64 `json:"daily_contribution_share"`
	NetAfterTax            float64 `json:"net_after_tax"`
	IncomePerHour          float64 `json:"income_per_hour"`
	IncomePerOrder         float64 `json:"income_per_order"`
	IncomePerKm            float64 `json:"income_per_km"`
	HoursWorked            float64 `json:"hours_worked"`
	TotalDistance          float64 `json:"total_distance"`
}

// ShiftDetailResponse represents a shift with its earnings breakdown.
type ShiftDetailResponse struct {
	ShiftResponse
	Earnings EarningsResponse `json:"earnings"`
}

// ShiftListResponse represents a list of shifts.
type ShiftListResponse struct {
	Shifts    []ShiftResponse `json:"shifts"`
	Count     int             `json:"count"`
	StartDate *string         `json:"start_date,omitempty"`
	EndDate   *string         `json:"end_date,omitempty"`
}

// ToShiftResponse converts a domain Shift entity to a ShiftResponse DTO.
func ToShiftResponse(shift *entity.Shift, loc *time.Location) ShiftResponse {
	return ShiftResponse{
		ID:            shift.ID.String(),
		Date:          FormatDate(shift.Date, loc),
		Hours:         shift.Hours,
		Minutes:       shift.Minutes,
		GrossIncome:   Money(shift.GrossIncome),
		Tips:          Money(shift.Tips),
		Bonus:         Money(shift.Bonus),
		FuelCost:      Money(shift.FuelCost),
		OtherExpenses: Money(shift.OtherExpenses),
		OrdersCount:   shift.OrdersCount,
		Kilometers:    shift.Kilometers.InexactFloat64(),
		OdometerStart: MoneyPtr(shift.OdometerStart),
		OdometerEnd:   MoneyPtr(shift.OdometerEnd),
		Notes:         shift.Notes,
		NetIncome:     Money(shift.NetIncome()),
		Distance:      shift.Distance().InexactFloat64(),
		IsDeleted:     shift.IsDeleted,
		DeletedAt:     shift.DeletedAt,
		CreatedAt:     shift.CreatedAt,
		UpdatedAt:     shift.UpdatedAt,
	}
}

// ToEarningsResponse converts a ShiftEarnings value to an EarningsResponse DTO.
func ToEarningsResponse(earnings valueobject.ShiftEarnings) EarningsResponse {
	return EarningsResponse{
		GrossIncome:            Money(earnings.GrossIncome),
		Tips:                   Money(earnings.Tips),
		Bonus:                  Money(earnings.Bonus),
		NetIncome:              Money(earnings.NetIncome),
		VAT:                    Money(earnings.VAT),
		DailyContributionShare: Money(earnings.DailyShare),
		NetAfterTax:            Money(earnings.NetAfterTax),
		IncomePerHour:          Money(earnings.IncomePerHour),
		IncomePerOrder:         Money(earnings.IncomePerOrder),
		IncomePerKm:            Ratio(earnings.IncomePerKm),
		HoursWorked:            Ratio(earnings.HoursWorked),
		TotalDistance:          earnings.TotalDistance.InexactFloat64(),
	}
}

// ToShiftListResponse converts shifts and their optional range to a ShiftListResponse DTO.
func ToShiftListResponse(shifts []*entity.Shift, dateRange *valueobject.DateRange, loc *time.Location) ShiftListResponse {
	response := ShiftListResponse{
		Shifts: make([]ShiftResponse, len(shifts)),
		Count:  len(shifts),
	}
	for i, shift := range shifts {
		response.Shifts[i] = ToShiftResponse(shift, loc)
	}
	response.StartDate, response.EndDate = rangeBounds(dateRange, loc)
	return response
}

func rangeBounds(dateRange *valueobject.DateRange, loc *time.Location) (*string, *string) {
	if dateRange == nil {
		return nil, nil
	}
	start := FormatDate(dateRange.Start, loc)
	end := FormatDate(dateRange.End, loc)
	return &start, &end
}
