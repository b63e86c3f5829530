package expense

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

// UpdateExpenseInput represents the input for a full expense replace.
type UpdateExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
	Expense   entity.ExpenseInput
}

// UpdateExpenseOutput represents the output of an expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	shiftRepo   adapter.ShiftRepository
	cache       adapter.StatisticsCache
	clock       adapter.Clock
	location    *time.Location
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	shiftRepo adapter.ShiftRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	location *time.Location,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		shiftRepo:   shiftRepo,
		cache:       cache,
		clock:       clock,
		location:    location,
	}
}

// Execute replaces the editable fields of a live expense and re-validates it.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if expense.IsDeleted {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseAlreadyDeleted,
			"restore the expense before editing it",
			domainerror.ErrExpenseAlreadyDeleted,
		)
	}

	updated := *expense
	updated.Apply(input.Expense, uc.clock.Now())

	now := valueobject.EndOfDay(uc.clock.Now().In(uc.location))
	if result := validation.ValidateExpense(&updated, now); !result.IsValid() {
		return nil, domainerror.NewExpenseRejectedError(string(result.Reason()))
	}

	if err := checkLinkedShift(ctx, uc.shiftRepo, updated.ShiftID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	return &UpdateExpenseOutput{
		Expense: &updated,
	}, nil
}
