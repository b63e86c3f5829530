package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
)

// GetExpenseInput represents the input for reading one expense.
type GetExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// GetExpenseOutput represents the output of reading one expense.
type GetExpenseOutput struct {
	Expense *entity.Expense
}

// GetExpenseUseCase reads a single expense.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute loads the expense if the user owns it.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetExpenseOutput{
		Expense: expense,
	}, nil
}

// ListCategories returns every expense category with its label and icon.
func ListCategories() []entity.ExpenseCategoryInfo {
	return entity.ExpenseCategories()
}
