package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// GetStatisticsInput represents the input for period statistics.
type GetStatisticsInput struct {
	UserID    uuid.UUID
	Period    Period
	StartDate string // YYYY-MM-DD, custom periods only
	EndDate   string // YYYY-MM-DD, custom periods only
}

// GetStatisticsOutput represents the output of period statistics.
type GetStatisticsOutput struct {
	Range      valueobject.DateRange
	Statistics valueobject.PeriodStatistics
	Cached     bool
}

// GetStatisticsUseCase aggregates a user's shifts and expenses over a period.
type GetStatisticsUseCase struct {
	shiftRepo   adapter.ShiftRepository
	expenseRepo adapter.ExpenseRepository
	cache       adapter.StatisticsCache
	clock       adapter.Clock
	location    *time.Location
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
func NewGetStatisticsUseCase(
	shiftRepo adapter.ShiftRepository,
	expenseRepo adapter.ExpenseRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	location *time.Location,
) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		shiftRepo:   shiftRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		clock:       clock,
		location:    location,
	}
}

// Execute resolves the period, then serves statistics from cache or recomputes them.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*GetStatisticsOutput, error) {
	now := uc.clock.Now().In(uc.location)

	dateRange, err := ResolveRange(input.Period, input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, err
	}

	cached, found, err := uc.cache.Get(ctx, input.UserID, dateRange)
	if err != nil {
		slog.Warn("Statistics cache read failed", "user_id", input.UserID, "error", err)
	} else if found {
		return &GetStatisticsOutput{
			Range:      dateRange,
			Statistics: *cached,
			Cached:     true,
		}, nil
	}

	shifts, expenses, err := loadPeriodRecords(ctx, uc.shiftRepo, uc.expenseRepo, input.UserID, dateRange)
	if err != nil {
		return nil, err
	}

	stats := AggregatePeriod(shifts, expenses, uc.location)

	if err := uc.cache.Set(ctx, input.UserID, dateRange, &stats); err != nil {
		slog.Warn("Statistics cache write failed", "user_id", input.UserID, "error", err)
	}

	return &GetStatisticsOutput{
		Range:      dateRange,
		Statistics: stats,
	}, nil
}

// loadPeriodRecords fetches live shifts and expenses of a range concurrently.
func loadPeriodRecords(
	ctx context.Context,
	shiftRepo adapter.ShiftRepository,
	expenseRepo adapter.ExpenseRepository,
	userID uuid.UUID,
	dateRange valueobject.DateRange,
) ([]*entity.Shift, []*entity.Expense, error) {
	filter := adapter.RecordFilter{UserID: userID, Range: &dateRange}

	var shifts []*entity.Shift
	var expenses []*entity.Expense

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		shifts, err = shiftRepo.FindByFilter(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to load shifts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = expenseRepo.FindByFilter(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return shifts, expenses, nil
}
