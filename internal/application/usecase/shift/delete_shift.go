package shift

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// DeleteShiftInput represents the input for soft, restore and permanent deletion.
type DeleteShiftInput struct {
	ShiftID uuid.UUID
	UserID  uuid.UUID
}

// DeleteShiftOutput represents the output of a deletion.
type DeleteShiftOutput struct {
	Success bool
}

// DeleteShiftUseCase moves a shift to the recycle bin.
type DeleteShiftUseCase struct {
	shiftRepo adapter.ShiftRepository
	cache     adapter.StatisticsCache
	clock     adapter.Clock
}

// NewDeleteShiftUseCase creates a new DeleteShiftUseCase instance.
func NewDeleteShiftUseCase(shiftRepo adapter.ShiftRepository, cache adapter.StatisticsCache, clock adapter.Clock) *DeleteShiftUseCase {
	return &DeleteShiftUseCase{
		shiftRepo: shiftRepo,
		cache:     cache,
		clock:     clock,
	}
}

// Execute soft-deletes the shift.
func (uc *DeleteShiftUseCase) Execute(ctx context.Context, input DeleteShiftInput) (*DeleteShiftOutput, error) {
	shift, err := findOwnedShift(ctx, uc.shiftRepo, input.ShiftID, input.UserID)
	if err != nil {
		return nil, err
	}

	if shift.IsDeleted {
		return nil, domainerror.NewShiftError(
			domainerror.ErrCodeShiftAlreadyDeleted,
			"shift is already deleted",
			domainerror.ErrShiftAlreadyDeleted,
		)
	}

	shift.SoftDelete(uc.clock.Now())
	if err := uc.shiftRepo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to delete shift: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	return &DeleteShiftOutput{
		Success: true,
	}, nil
}

// RestoreShiftUseCase brings a shift back from the recycle bin.
type RestoreShiftUseCase struct {
	shiftRepo adapter.ShiftRepository
	cache     adapter.StatisticsCache
	clock     adapter.Clock
}

// NewRestoreShiftUseCase creates a new RestoreShiftUseCase instance.
func NewRestoreShiftUseCase(shiftRepo adapter.ShiftRepository, cache adapter.StatisticsCache, clock adapter.Clock) *RestoreShiftUseCase {
	return &RestoreShiftUseCase{
		shiftRepo: shiftRepo,
		cache:     cache,
		clock:     clock,
	}
}

// Execute restores a soft-deleted shift.
func (uc *RestoreShiftUseCase) Execute(ctx context.Context, input DeleteShiftInput) (*DeleteShiftOutput, error) {
	shift, err := findOwnedShift(ctx, uc.shiftRepo, input.ShiftID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !shift.IsDeleted {
		return nil, notDeletedError()
	}

	shift.Restore(uc.clock.Now())
	if err := uc.shiftRepo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to restore shift: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	return &DeleteShiftOutput{
		Success: true,
	}, nil
}

// PermanentDeleteShiftUseCase removes a shift from the recycle bin for good.
type PermanentDeleteShiftUseCase struct {
	shiftRepo adapter.ShiftRepository
}

// NewPermanentDeleteShiftUseCase creates a new PermanentDeleteShiftUseCase instance.
func NewPermanentDeleteShiftUseCase(shiftRepo adapter.ShiftRepository) *PermanentDeleteShiftUseCase {
	return &PermanentDeleteShiftUseCase{
		shiftRepo: shiftRepo,
	}
}

// Execute permanently deletes a soft-deleted shift.
func (uc *PermanentDeleteShiftUseCase) Execute(ctx context.Context, input DeleteShiftInput) (*DeleteShiftOutput, error) {
	shift, err := findOwnedShift(ctx, uc.shiftRepo, input.ShiftID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Only recycle-bin entries can be purged.
	if !shift.IsDeleted {
		return nil, notDeletedError()
	}

	if err := uc.shiftRepo.Delete(ctx, shift.ID); err != nil {
		return nil, fmt.Errorf("failed to permanently delete shift: %w", err)
	}

	return &DeleteShiftOutput{
		Success: true,
	}, nil
}

func notDeletedError() error {
	return domainerror.NewShiftError(
		domainerror.ErrCodeShiftNotDeleted,
		"shift is not in the recycle bin",
		domainerror.ErrShiftNotDeleted,
	)
}
