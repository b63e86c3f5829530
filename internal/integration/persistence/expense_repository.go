package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db           *gorm.DB
	pollInterval time.Duration
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB, pollInterval time.Duration) adapter.ExpenseRepository {
	return &expenseRepository{
		db:           db,
		pollInterval: pollInterval,
	}
}

// Create creates a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByFilter retrieves expenses matching the filter, newest first.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := applyRecordFilter(r.db.WithContext(ctx), filter).
		Order("date DESC").
		Order("created_at DESC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

// Update persists every field of the expense.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).Save(model.ExpenseFromEntity(expense))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes an expense permanently.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// DeleteByUserID permanently removes every expense of a user.
func (r *expenseRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "user_id = ?", userID).Error
}

// Observe re-runs the filtered query on an interval and emits on change.
func (r *expenseRepository) Observe(ctx context.Context, filter adapter.RecordFilter) (<-chan adapter.ExpenseSnapshot, error) {
	return pollQuery(ctx, r.pollInterval,
		func(ctx context.Context) ([]*entity.Expense, error) {
			return r.FindByFilter(ctx, filter)
		},
		func(e *entity.Expense) (uuid.UUID, time.Time) {
			return e.ID, e.UpdatedAt
		},
		func(expenses []*entity.Expense, err error) adapter.ExpenseSnapshot {
			return adapter.ExpenseSnapshot{Expenses: expenses, Err: err}
		},
	), nil
}
