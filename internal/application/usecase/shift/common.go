// Package shift contains shift-related use cases.
package shift

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

// findOwnedShift loads a shift and verifies it belongs to userID.
func findOwnedShift(ctx context.Context, repo adapter.ShiftRepository, shiftID, userID uuid.UUID) (*entity.Shift, error) {
	shift, err := repo.FindByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, domainerror.ErrShiftNotFound) {
			return nil, domainerror.NewShiftError(
				domainerror.ErrCodeShiftNotFound,
				"shift not found",
				domainerror.ErrShiftNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find shift: %w", err)
	}

	if shift.UserID != userID {
		return nil, domainerror.NewShiftError(
			domainerror.ErrCodeUnauthorizedShift,
			"not authorized to access this shift",
			domainerror.ErrUnauthorizedShiftAccess,
		)
	}

	return shift, nil
}

// invalidateStatistics drops cached statistics after a write. Failures are
// logged only, the cache entries expire on their own.
func invalidateStatistics(ctx context.Context, cache adapter.StatisticsCache, userID uuid.UUID) {
	if err := cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("Failed to invalidate statistics cache",
			"user_id", userID,
			"error", err,
		)
	}
}
