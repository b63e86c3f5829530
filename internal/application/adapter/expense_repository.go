// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/domain/entity"
)

// ExpenseSnapshot is one emission of an observed expense query.
type ExpenseSnapshot struct {
	Expenses []*entity.Expense
	Err      error
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID, including soft-deleted ones.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByFilter retrieves expenses matching the filter, newest first.
	FindByFilter(ctx context.Context, filter RecordFilter) ([]*entity.Expense, error)

	// Update persists every field of the expense, including its deleted state.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes the expense permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID permanently removes every expense of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// Observe emits the filtered expense list now and again whenever it changes.
	// The channel is closed when ctx is done.
	Observe(ctx context.Context, filter RecordFilter) (<-chan ExpenseSnapshot, error)
}
