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

// shiftRepository implements the adapter.ShiftRepository interface on Firestore.
type shiftRepository struct {
	client *firestore.Client
}

// NewShiftRepository creates a Firestore-backed shift repository.
func NewShiftRepository(client *firestore.Client) adapter.ShiftRepository {
	return &shiftRepository{
		client: client,
	}
}

func (r *shiftRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(shiftsCollection)
}

// Create stores a new shift document keyed by the shift ID.
func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	_, err := r.collection().Doc(shift.ID.String()).Create(ctx, shiftToDocument(shift))
	return err
}

// FindByID retrieves a shift by its ID.
func (r *shiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerror.ErrShiftNotFound
		}
		return nil, err
	}
	return decodeShift(doc)
}

// FindByFilter retrieves shifts matching the filter, newest first.
func (r *shiftRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Shift, error) {
	return readAll(filterQuery(r.collection(), filter).Documents(ctx), decodeShift)
}

// Update replaces the stored shift document.
func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	_, err := r.collection().Doc(shift.ID.String()).Set(ctx, shiftToDocument(shift))
	return err
}

// Delete removes a shift document. Missing documents report ErrShiftNotFound.
func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.collection().Doc(id.String()).Delete(ctx, firestore.Exists)
	if err != nil {
		if isNotFound(err) {
			return domainerror.ErrShiftNotFound
		}
		return err
	}
	return nil
}

// DeleteByUserID removes every shift document of a user.
func (r *shiftRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := r.collection().Where("user_id", "==", userID.String())
	if err := deleteWhere(ctx, r.client, query); err != nil {
		return fmt.Errorf("failed to delete shifts: %w", err)
	}
	return nil
}

// Observe listens to the filtered query and emits on every change.
func (r *shiftRepository) Observe(ctx context.Context, filter adapter.RecordFilter) (<-chan adapter.ShiftSnapshot, error) {
	return observeQuery(ctx, filterQuery(r.collection(), filter), decodeShift,
		func(shifts []*entity.Shift, err error) adapter.ShiftSnapshot {
			return adapter.ShiftSnapshot{Shifts: shifts, Err: err}
		},
	), nil
}

func decodeShift(doc *firestore.DocumentSnapshot) (*entity.Shift, error) {
	var data shiftDocument
	if err := doc.DataTo(&data); err != nil {
		return nil, err
	}
	return data.toEntity(doc.Ref.ID)
}
