package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// StatisticsUpdate is one recomputation pushed to a watcher.
type StatisticsUpdate struct {
	Range      valueobject.DateRange
	Statistics valueobject.PeriodStatistics
	Err        error
}

// WatchStatisticsUseCase recomputes period statistics whenever the
// underlying shifts or expenses change.
type WatchStatisticsUseCase struct {
	shiftRepo   adapter.ShiftRepository
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
	location    *time.Location
}

// NewWatchStatisticsUseCase creates a new WatchStatisticsUseCase instance.
func NewWatchStatisticsUseCase(
	shiftRepo adapter.ShiftRepository,
	expenseRepo adapter.ExpenseRepository,
	clock adapter.Clock,
	location *time.Location,
) *WatchStatisticsUseCase {
	return &WatchStatisticsUseCase{
		shiftRepo:   shiftRepo,
		expenseRepo: expenseRepo,
		clock:       clock,
		location:    location,
	}
}

// Execute subscribes to both record streams and returns a channel of
// updates. The first update is sent once both streams have emitted. The
// channel is closed when ctx is done or either stream ends.
func (uc *WatchStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (<-chan StatisticsUpdate, error) {
	now := uc.clock.Now().In(uc.location)

	dateRange, err := ResolveRange(input.Period, input.StartDate, input.EndDate, now)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	filter := adapter.RecordFilter{UserID: input.UserID, Range: &dateRange}

	shiftCh, err := uc.shiftRepo.Observe(ctx, filter)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to observe shifts: %w", err)
	}
	expenseCh, err := uc.expenseRepo.Observe(ctx, filter)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to observe expenses: %w", err)
	}

	updates := make(chan StatisticsUpdate, 1)
	go func() {
		defer cancel()
		defer close(updates)

		var (
			shifts      []*entity.Shift
			expenses    []*entity.Expense
			haveShifts  bool
			haveExpense bool
		)

		for {
			select {
			case <-ctx.Done():
				return
			case snapshot, ok := <-shiftCh:
				if !ok {
					return
				}
				if snapshot.Err != nil {
					if !send(ctx, updates, StatisticsUpdate{Range: dateRange, Err: snapshot.Err}) {
						return
					}
					continue
				}
				shifts, haveShifts = snapshot.Shifts, true
			case snapshot, ok := <-expenseCh:
				if !ok {
					return
				}
				if snapshot.Err != nil {
					if !send(ctx, updates, StatisticsUpdate{Range: dateRange, Err: snapshot.Err}) {
						return
					}
					continue
				}
				expenses, haveExpense = snapshot.Expenses, true
			}

			if !haveShifts || !haveExpense {
				continue
			}
			update := StatisticsUpdate{
				Range:      dateRange,
				Statistics: AggregatePeriod(shifts, expenses, uc.location),
			}
			if !send(ctx, updates, update) {
				return
			}
		}
	}()

	return updates, nil
}

func send(ctx context.Context, ch chan<- StatisticsUpdate, update StatisticsUpdate) bool {
	select {
	case ch <- update:
		return true
	case <-ctx.Done():
		return false
	}
}
