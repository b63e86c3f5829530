package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/validation"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// CreateShiftInput represents the input for shift creation.
type CreateShiftInput struct {
	UserID uuid.UUID
	Shift  entity.ShiftInput
}

// CreateShiftOutput represents the output of shift creation.
type CreateShiftOutput struct {
	Shift *entity.Shift
}

// CreateShiftUseCase handles shift creation logic.
type CreateShiftUseCase struct {
	shiftRepo adapter.ShiftRepository
	cache     adapter.StatisticsCache
	clock     adapter.Clock
	location  *time.Location
}

// NewCreateShiftUseCase creates a new CreateShiftUseCase instance.
func NewCreateShiftUseCase(
	shiftRepo adapter.ShiftRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	location *time.Location,
) *CreateShiftUseCase {
	return &CreateShiftUseCase{
		shiftRepo: shiftRepo,
		cache:     cache,
		clock:     clock,
		location:  location,
	}
}

// Execute validates and stores a new shift.
func (uc *CreateShiftUseCase) Execute(ctx context.Context, input CreateShiftInput) (*CreateShiftOutput, error) {
	shift := entity.NewShift(input.UserID, input.Shift, uc.clock.Now())

	// Shift dates sit at midday, so a shift logged this morning is still "today".
	now := valueobject.EndOfDay(uc.clock.Now().In(uc.location))
	if result := validation.ValidateShift(shift, now); !result.IsValid() {
		return nil, domainerror.NewShiftRejectedError(string(result.Reason()))
	}

	if err := uc.shiftRepo.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	slog.Info("Shift created",
		"shift_id", shift.ID,
		"user_id", shift.UserID,
		"date", shift.Date.Format(time.DateOnly),
	)

	return &CreateShiftOutput{
		Shift: shift,
	}, nil
}
