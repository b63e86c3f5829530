// Package statistics contains the earnings calculations and the statistics use cases.
package statistics

import (
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// CalculateShiftEarnings computes the earnings breakdown of a single shift.
// VAT is levied on gross + bonus only; tips are outside the VAT base.
func CalculateShiftEarnings(shift *entity.Shift, params valueobject.EarningsParams) valueobject.ShiftEarnings {
	net := shift.NetIncome()
	hours := shift.DecimalHours()
	distance := shift.Distance()

	vat := CalculateVAT(shift, params.VATRate)
	dailyShare := valueobject.SafeDiv(params.MonthlyContribution, decimal.NewFromInt(int64(params.WorkingDaysPerMonth)))

	return valueobject.ShiftEarnings{
		GrossIncome:    shift.GrossIncome,
		Tips:           shift.Tips,
		Bonus:          shift.Bonus,
		NetIncome:      net,
		VAT:            vat,
		DailyShare:     dailyShare,
		NetAfterTax:    net.Sub(vat).Sub(dailyShare),
		IncomePerHour:  valueobject.SafeDiv(net, hours),
		IncomePerOrder: valueobject.SafeDiv(net, decimal.NewFromInt(int64(shift.OrdersCount))),
		IncomePerKm:    valueobject.SafeDiv(net, distance),
		HoursWorked:    hours,
		TotalDistance:  distance,
	}
}

// CalculateVAT returns (gross + bonus) × rate for a shift.
func CalculateVAT(shift *entity.Shift, rate decimal.Decimal) decimal.Decimal {
	return shift.GrossIncome.Add(shift.Bonus).Mul(rate)
}
