package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/application/usecase/statistics"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// ListExpensesInput represents the input for listing expenses.
// Without a period or dates every expense is returned.
type ListExpensesInput struct {
	UserID    uuid.UUID
	Period    statistics.Period
	StartDate string
	EndDate   string
	Category  *entity.ExpenseCategory
	Deleted   bool
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Range    *valueobject.DateRange
	Total    decimal.Decimal
}

// ListExpensesUseCase handles expense listing.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
	location    *time.Location
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock, location *time.Location) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
		clock:       clock,
		location:    location,
	}
}

// Execute lists live or deleted expenses, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
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
				return nil, domainerror.NewExpenseError(
					domainerror.ErrCodeInvalidExpenseListFilter,
					statsErr.Message,
					err,
				)
			}
			return nil, err
		}
		filter.Range = &dateRange
	}

	expenses, err := uc.expenseRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	output := &ListExpensesOutput{
		Expenses: make([]*entity.Expense, 0, len(expenses)),
		Range:    filter.Range,
		Total:    decimal.Zero,
	}
	for _, expense := range expenses {
		if input.Category != nil && expense.Category != *input.Category {
			continue
		}
		output.Expenses = append(output.Expenses, expense)
		output.Total = output.Total.Add(expense.Amount)
	}

	return output, nil
}
