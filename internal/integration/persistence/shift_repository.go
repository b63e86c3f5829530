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

// shiftRepository implements the adapter.ShiftRepository interface.
type shiftRepository struct {
	db           *gorm.DB
	pollInterval time.Duration
}

// NewShiftRepository creates a new shift repository instance.
// pollInterval controls how often observed queries are re-run.
func NewShiftRepository(db *gorm.DB, pollInterval time.Duration) adapter.ShiftRepository {
	return &shiftRepository{
		db:           db,
		pollInterval: pollInterval,
	}
}

// Create creates a new shift in the database.
func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	result := r.db.WithContext(ctx).Create(model.ShiftFromEntity(shift))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a shift by its ID.
func (r *shiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shiftModel model.ShiftModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&shiftModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrShiftNotFound
		}
		return nil, result.Error
	}
	return shiftModel.ToEntity(), nil
}

// FindByFilter retrieves shifts matching the filter, newest first.
func (r *shiftRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Shift, error) {
	var shiftModels []model.ShiftModel
	result := applyRecordFilter(r.db.WithContext(ctx), filter).
		Order("date DESC").
		Order("created_at DESC").
		Find(&shiftModels)
	if result.Error != nil {
		return nil, result.Error
	}

	shifts := make([]*entity.Shift, len(shiftModels))
	for i := range shiftModels {
		shifts[i] = shiftModels[i].ToEntity()
	}
	return shifts, nil
}

// Update persists every field of the shift.
func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	result := r.db.WithContext(ctx).Save(model.ShiftFromEntity(shift))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a shift permanently.
func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ShiftModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrShiftNotFound
	}
	return nil
}

// DeleteByUserID permanently removes every shift of a user.
func (r *shiftRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ShiftModel{}, "user_id = ?", userID).Error
}

// Observe re-runs the filtered query on an interval and emits on change.
func (r *shiftRepository) Observe(ctx context.Context, filter adapter.RecordFilter) (<-chan adapter.ShiftSnapshot, error) {
	return pollQuery(ctx, r.pollInterval,
		func(ctx context.Context) ([]*entity.Shift, error) {
			return r.FindByFilter(ctx, filter)
		},
		func(s *entity.Shift) (uuid.UUID, time.Time) {
			return s.ID, s.UpdatedAt
		},
		func(shifts []*entity.Shift, err error) adapter.ShiftSnapshot {
			return adapter.ShiftSnapshot{Shifts: shifts, Err: err}
		},
	), nil
}

// applyRecordFilter narrows a query on shifts or expenses to the filter.
func applyRecordFilter(query *gorm.DB, filter adapter.RecordFilter) *gorm.DB {
	query = query.Where("user_id = ? AND is_deleted = ?", filter.UserID, filter.Deleted)
	if filter.Range != nil {
		query = query.Where("date BETWEEN ? AND ?", filter.Range.Start.UTC(), filter.Range.End.UTC())
	}
	return query
}
