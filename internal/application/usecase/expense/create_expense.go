package expense

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

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID  uuid.UUID
	Expense entity.ExpenseInput
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	shiftRepo   adapter.ShiftRepository
	cache       adapter.StatisticsCache
	clock       adapter.Clock
	location    *time.Location
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	shiftRepo adapter.ShiftRepository,
	cache adapter.StatisticsCache,
	clock adapter.Clock,
	location *time.Location,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		shiftRepo:   shiftRepo,
		cache:       cache,
		clock:       clock,
		location:    location,
	}
}

// Execute validates and stores a new expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	expense := entity.NewExpense(input.UserID, input.Expense, uc.clock.Now())

	now := valueobject.EndOfDay(uc.clock.Now().In(uc.location))
	if result := validation.ValidateExpense(expense, now); !result.IsValid() {
		return nil, domainerror.NewExpenseRejectedError(string(result.Reason()))
	}

	if err := checkLinkedShift(ctx, uc.shiftRepo, expense.ShiftID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	invalidateStatistics(ctx, uc.cache, input.UserID)

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"user_id", expense.UserID,
		"category", expense.Category,
	)

	return &CreateExpenseOutput{
		Expense: expense,
	}, nil
}
