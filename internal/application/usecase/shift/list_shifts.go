package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/application/usecase/statistics"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// ListShiftsInput represents the input for listing shifts.
// Without a period or dates every shift is returned.
type ListShiftsInput struct {
	UserID    uuid.UUID
	Period    statistics.Period
	StartDate string
	EndDate   string
	Deleted   bool
}

// ListShiftsOutput represents the output of listing shifts.
type ListShiftsOutput struct {
	Shifts []*entity.Shift
	Range  *valueobject.DateRange
}

// ListShiftsUseCase handles shift listing.
type ListShiftsUseCase struct {
	shiftRepo adapter.ShiftRepository
	clock     adapter.Clock
	location  *time.Location
}

// NewListShiftsUseCase creates a new ListShiftsUseCase instance.
func NewListShiftsUseCase(shiftRepo adapter.ShiftRepository, clock adapter.Clock, location *time.Location) *ListShiftsUseCase {
	return &ListShiftsUseCase{
		shiftRepo: shiftRepo,
		clock:     clock,
		location:  location,
	}
}

// Execute lists live or deleted shifts, newest first.
func (uc *ListShiftsUseCase) Execute(ctx context.Context, input ListShiftsInput) (*ListShiftsOutput, error) {
	filter := adapter.RecordFilter{
		UserID:  input.UserID,
		Deleted: input.Deleted,
	}

	if input.Period != "" || input.StartDate != "" || input.EndDate != "" {
		now := uc.clock.Now().In(uc.location)
		dateRange, err := statistics.ResolveRange(input.Period, input.StartDate, input.EndDate, now)
		if err != nil {
			var statsErr *domainerror.StatisticsError
			if errors.As(err, &statsErr) {
				return nil, domainerror.NewShiftError(
					domainerror.ErrCodeInvalidShiftListFilter,
					statsErr.Message,
					err,
				)
			}
			return nil, err
		}
		filter.Range = &dateRange
	}

	shifts, err := uc.shiftRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	return &ListShiftsOutput{
		Shifts: shifts,
		Range:  filter.Range,
	}, nil
}
