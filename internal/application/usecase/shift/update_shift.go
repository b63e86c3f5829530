package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/validation"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// UpdateShiftInput represents the input for a full shift replace.
type UpdateShiftInput struct {
	ShiftID uuid.UUID
	UserID  uuid.UUID
	Shift   entity.ShiftInput
}

// UpdateShiftOutput represents the output of a shift update.
type UpdateShiftOutput struct {
	Shift *entity.Shift
}

// UpdateShiftUseCase handles shift update logic.
type UpdateShiftUseCase struct {
	shiftRepo adapter.ShiftRepository
	cache     adapter.StatisticsCache
	clock     adapter.Clock
	location  *time.Location
}

// NewUpdateShiftUseCase creates a new UpdateShiftUseCase instance.
func NewUpdateShiftUseCase(
	shiftRepo adapter.ShiftRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	location *time.Location,
) *UpdateShiftUseCase {
	return &UpdateShiftUseCase{
		shiftRepo: shiftRepo,
		cache:     cache,
		clock:     clock,
		location:  location,
	}
}

// Execute replaces the editable fields of a live shift and re-validates it.
func (uc *UpdateShiftUseCase) Execute(ctx context.Context, input UpdateShiftInput) (*UpdateShiftOutput, error) {
	shift, err := findOwnedShift(ctx, uc.shiftRepo, input.ShiftID, input.UserID)
	if err != nil {
		return nil, err
	}

	if shift.IsDeleted {
		return nil, domainerror.NewShiftError(
			domainerror.ErrCodeShiftAlreadyDeleted,
			"restore the shift before editing it",
			domainerror.ErrShiftAlreadyDeleted,
		)
	}

	updated := *shift
	updated.Apply(input.Shift, uc.clock.Now())

	now := valueobject.EndOfDay(uc.clock.Now().In(uc.location))
	if result := validation.ValidateShift(&updated, now); !result.IsValid() {
		return nil, domainerror.NewShiftRejectedError(string(result.Reason()))
	}

	if err := uc.shiftRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	return &UpdateShiftOutput{
		Shift: &updated,
	}, nil
}
