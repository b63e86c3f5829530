package docstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// expenseRepository implements the adapter.ExpenseRepository interface on Firestore.
type expenseRepository struct {
	client *firestore.Client
}

// NewExpenseRepository creates a Firestore-backed expense repository.
func NewExpenseRepository(client *firestore.Client) adapter.ExpenseRepository {
	return &expenseRepository{
		client: client,
	}
}

func (r *expenseRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(expensesCollection)
}

// Create stores a new expense document keyed by the expense ID.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	_, err := r.collection().Doc(expense.ID.String()).Create(ctx, expenseToDocument(expense))
	return err
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, err
	}
	return decodeExpense(doc)
}

// FindByFilter retrieves expenses matching the filter, newest first.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Expense, error) {
	return readAll(filterQuery(r.collection(), filter).Documents(ctx), decodeExpense)
}

// Update replaces the stored expense document.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	_, err := r.collection().Doc(expense.ID.String()).Set(ctx, expenseToDocument(expense))
	return err
}

// Delete removes an expense document.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.collection().Doc(id.String()).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return domainerror.ErrExpenseNotFound
		}
		return err
	}
	return nil
}

// DeleteByUserID removes every expense document of a user.
func (r *expenseRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := r.collection().Where("user_id", "==", userID.String())
	if err := deleteWhere(ctx, r.client, query); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	return nil
}

// Observe listens to the filtered query and emits on every change.
func (r *expenseRepository) Observe(ctx context.Context, filter adapter.RecordFilter) (<-chan adapter.ExpenseSnapshot, error) {
	return observeQuery(ctx, filterQuery(r.collection(), filter), decodeExpense,
		func(expenses []*entity.Expense, err error) adapter.ExpenseSnapshot {
			return adapter.ExpenseSnapshot{Expenses: expenses, Err: err}
		},
	), nil
}

func decodeExpense(doc *firestore.DocumentSnapshot) (*entity.Expense, error) {
	var data expenseDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, err
	}
	return data.toEntity(doc.Ref.ID)
}
