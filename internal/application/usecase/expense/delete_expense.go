package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// DeleteExpenseInput represents the input for soft, restore and permanent deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// DeleteExpenseOutput represents the output of a deletion.
type DeleteExpenseOutput struct {
	Success bool
}

// DeleteExpenseUseCase moves an expense to the recycle bin.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.StatisticsCache
	clock       adapter.Clock
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.StatisticsCache, clock adapter.Clock) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
		clock:       clock,
	}
}

// Execute soft-deletes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if expense.IsDeleted {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseAlreadyDeleted,
			"expense is already deleted",
			domainerror.ErrExpenseAlreadyDeleted,
		)
	}

	expense.SoftDelete(uc.clock.Now())
	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	return &DeleteExpenseOutput{
		Success: true,
	}, nil
}

// RestoreExpenseUseCase brings an expense back from the recycle bin.
type RestoreExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	cache       adapter.StatisticsCache
	clock       adapter.Clock
}

// NewRestoreExpenseUseCase creates a new RestoreExpenseUseCase instance.
func NewRestoreExpenseUseCase(expenseRepo adapter.ExpenseRepository, cache adapter.StatisticsCache, clock adapter.Clock) *RestoreExpenseUseCase {
	return &RestoreExpenseUseCase{
		expenseRepo: expenseRepo,
		cache:       cache,
		clock:       clock,
	}
}

// Execute restores a soft-deleted expense.
func (uc *RestoreExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !expense.IsDeleted {
		return nil, notDeletedError()
	}

	expense.Restore(uc.clock.Now())
	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to restore expense: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	return &DeleteExpenseOutput{
		Success: true,
	}, nil
}

// PermanentDeleteExpenseUseCase removes an expense from the recycle bin for good.
type PermanentDeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewPermanentDeleteExpenseUseCase creates a new PermanentDeleteExpenseUseCase instance.
func NewPermanentDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository) *PermanentDeleteExpenseUseCase {
	return &PermanentDeleteExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute permanently deletes a soft-deleted expense.
func (uc *PermanentDeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !expense.IsDeleted {
		return nil, notDeletedError()
	}

	if err := uc.expenseRepo.Delete(ctx, expense.ID); err != nil {
		return nil, fmt.Errorf("failed to permanently delete expense: %w", err)
	}

	return &DeleteExpenseOutput{
		Success: true,
	}, nil
}

func notDeletedError() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotDeleted,
		"expense is not in the recycle bin",
		domainerror.ErrExpenseNotDeleted,
	)
}
