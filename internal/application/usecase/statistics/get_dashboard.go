package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/application/usecase/settings"
	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// GetDashboardInput represents the input for the dashboard.
type GetDashboardInput struct {
	UserID uuid.UUID
}

// GetDashboardOutput represents the dashboard numbers for the current day.
type GetDashboardOutput struct {
	Date               time.Time
	TodayIncome        decimal.Decimal
	TodayShifts        int
	WeekIncome         decimal.Decimal
	MonthIncome        decimal.Decimal
	MonthExpenses      decimal.Decimal
	MonthNetProfit     decimal.Decimal
	MonthVAT           decimal.Decimal
	DailyGoal          *decimal.Decimal
	WeeklyGoal         *decimal.Decimal
	MonthlyGoal        *decimal.Decimal
	Progress           valueobject.GoalProgress
	WeeklyProgress     float64
	DailyGoalReached   bool
	WeeklyGoalReached  bool
	MonthlyGoalReached bool
}

// GetDashboardUseCase builds the home screen summary.
type GetDashboardUseCase struct {
	shiftRepo    adapter.ShiftRepository
	expenseRepo  adapter.ExpenseRepository
	settingsRepo adapter.SettingsRepository
	clock        adapter.Clock
	location     *time.Location
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	shiftRepo adapter.ShiftRepository,
	expenseRepo adapter.ExpenseRepository,
	settingsRepo adapter.SettingsRepository,
	clock adapter.Clock,
	location *time.Location,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		shiftRepo:    shiftRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
		clock:        clock,
		location:     location,
	}
}

// Execute loads shifts, expenses and settings concurrently and derives the dashboard.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	now := uc.clock.Now().In(uc.location)

	today, _ := PeriodRange(PeriodToday, now)
	week, _ := PeriodRange(PeriodWeek, now)
	month, _ := PeriodRange(PeriodMonth, now)

	// A week may start in the previous month, so load from the earlier bound.
	shiftRange := month
	if week.Start.Before(shiftRange.Start) {
		shiftRange.Start = week.Start
	}

	var (
		shifts       []*entity.Shift
		expenses     []*entity.Expense
		userSettings *entity.UserSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shifts, err = uc.shiftRepo.FindByFilter(gctx, adapter.RecordFilter{UserID: input.UserID, Range: &shiftRange})
		if err != nil {
			return fmt.Errorf("failed to load shifts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = uc.expenseRepo.FindByFilter(gctx, adapter.RecordFilter{UserID: input.UserID, Range: &month})
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		userSettings, err = settings.LoadOrDefault(gctx, uc.settingsRepo, input.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &GetDashboardOutput{
		Date:          now,
		TodayIncome:   decimal.Zero,
		WeekIncome:    decimal.Zero,
		MonthIncome:   decimal.Zero,
		MonthExpenses: decimal.Zero,
		MonthVAT:      decimal.Zero,
	}

	for _, shift := range shifts {
		net := shift.NetIncome()
		if today.Contains(shift.Date) {
			output.TodayIncome = output.TodayIncome.Add(net)
			output.TodayShifts++
		}
		if week.Contains(shift.Date) {
			output.WeekIncome = output.WeekIncome.Add(net)
		}
		if month.Contains(shift.Date) {
			output.MonthIncome = output.MonthIncome.Add(net)
			output.MonthVAT = output.MonthVAT.Add(CalculateVAT(shift, userSettings.VATRate))
		}
	}
	for _, expense := range expenses {
		output.MonthExpenses = output.MonthExpenses.Add(expense.Amount)
	}
	output.MonthNetProfit = output.MonthIncome.Sub(output.MonthExpenses)

	output.DailyGoal = userSettings.DailyGoal
	output.WeeklyGoal = userSettings.EffectiveWeeklyGoal()
	output.MonthlyGoal = userSettings.EffectiveMonthlyGoal()

	output.Progress = EvaluateGoalProgress(output.TodayIncome, output.MonthIncome, output.DailyGoal, output.MonthlyGoal)
	output.WeeklyProgress = ProgressRatio(output.WeekIncome, output.WeeklyGoal)
	output.DailyGoalReached = GoalReached(output.TodayIncome, output.DailyGoal)
	output.WeeklyGoalReached = GoalReached(output.WeekIncome, output.WeeklyGoal)
	output.MonthlyGoalReached = GoalReached(output.MonthIncome, output.MonthlyGoal)

	return output, nil
}
