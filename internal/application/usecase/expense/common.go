// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

func findOwnedExpense(ctx context.Context, repo adapter.ExpenseRepository, expenseID, userID uuid.UUID) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}

	if expense.UserID != userID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeUnauthorizedExpense,
			"not authorized to access this expense",
			domainerror.ErrUnauthorizedExpenseAccess,
		)
	}

	return expense, nil
}

// checkLinkedShift verifies that an optional linked shift exists and belongs to the user.
func checkLinkedShift(ctx context.Context, repo adapter.ShiftRepository, shiftID *uuid.UUID, userID uuid.UUID) error {
	if shiftID == nil {
		return nil
	}

	shift, err := repo.FindByID(ctx, *shiftID)
	if err != nil && !errors.Is(err, domainerror.ErrShiftNotFound) {
		return fmt.Errorf("failed to find linked shift: %w", err)
	}
	if err != nil || shift.UserID != userID {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseShiftNotFound,
			"linked shift not found",
			domainerror.ErrShiftNotFound,
		)
	}

	return nil
}

func invalidateStatistics(ctx context.Context, cache adapter.StatisticsCache, userID uuid.UUID) {
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate statistics cache",
			"user_id", userID,
			"error", err,
		)
	}
}
