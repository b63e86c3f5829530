// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// RecordFilter selects a user's shifts or expenses.
type RecordFilter struct {
	UserID uuid.UUID
	// Range limits results to records dated inside it. Nil means all time.
	Range *valueobject.DateRange
	// Deleted selects the recycle bin instead of live records.
	Deleted bool
}

// ShiftSnapshot is one emission of an observed shift query.
type ShiftSnapshot struct {
	Shifts []*entity.Shift
	Err    error
}

// ShiftRepository defines the interface for shift persistence operations.
type ShiftRepository interface {
	// Create creates a new shift.
	Create(ctx context.Context, shift *entity.Shift) error

	// FindByID retrieves a shift by its ID, including soft-deleted ones.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)

	// FindByFilter retrieves shifts matching the filter, newest first.
	FindByFilter(ctx context.Context, filter RecordFilter) ([]*entity.Shift, error)

	// Update persists every field of the shift, including its deleted state.
	Update(ctx context.Context, shift *entity.Shift) error

	// Delete removes the shift permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID permanently removes every shift of a user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// Observe emits the filtered shift list now and again whenever it changes.
	// The channel is closed when ctx is done.
	Observe(ctx context.Context, filter RecordFilter) (<-chan ShiftSnapshot, error)
}
