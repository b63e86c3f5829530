package shift

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/application/usecase/settings"
	"github.com/gigledger/backend/internal/application/usecase/statistics"
	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// GetShiftInput represents the input for reading one shift.
type GetShiftInput struct {
	ShiftID uuid.UUID
	UserID  uuid.UUID
}

// GetShiftOutput carries the shift and its earnings breakdown.
type GetShiftOutput struct {
	Shift    *entity.Shift
	Earnings valueobject.ShiftEarnings
}

// GetShiftUseCase reads a shift with its earnings under the user's settings.
type GetShiftUseCase struct {
	shiftRepo           adapter.ShiftRepository
	settingsRepo        adapter.SettingsRepository
	workingDaysPerMonth int
}

// NewGetShiftUseCase creates a new GetShiftUseCase instance.
func NewGetShiftUseCase(
	shiftRepo adapter.ShiftRepository,
	settingsRepo adapter.SettingsRepository,
	workingDaysPerMonth int,
) *GetShiftUseCase {
	return &GetShiftUseCase{
		shiftRepo:           shiftRepo,
		settingsRepo:        settingsRepo,
		workingDaysPerMonth: workingDaysPerMonth,
	}
}

// Execute loads the shift and computes its earnings breakdown.
func (uc *GetShiftUseCase) Execute(ctx context.Context, input GetShiftInput) (*GetShiftOutput, error) {
	shift, err := findOwnedShift(ctx, uc.shiftRepo, input.ShiftID, input.UserID)
	if err != nil {
		return nil, err
	}

	userSettings, err := settings.LoadOrDefault(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	params := valueobject.EarningsParamsFromSettings(userSettings, uc.workingDaysPerMonth)

	return &GetShiftOutput{
		Shift:    shift,
		Earnings: statistics.CalculateShiftEarnings(shift, params),
	}, nil
}
