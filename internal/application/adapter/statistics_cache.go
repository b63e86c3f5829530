// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/domain/valueobject"
)

// StatisticsCache stores computed period statistics per user and range.
type StatisticsCache interface {
	// Get returns the cached statistics and whether they were found.
	Get(ctx context.Context, userID uuid.UUID, dateRange valueobject.DateRange) (*valueobject.PeriodStatistics, bool, error)

	// Set stores statistics for the user and range.
	Set(ctx context.Context, userID uuid.UUID, dateRange valueobject.DateRange, stats *valueobject.PeriodStatistics) error

	// InvalidateUser drops every cached entry of the user.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
