package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/usecase/statistics"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/entrypoint/dto"
)

// StatisticsController handles statistics and dashboard endpoints.
type StatisticsController struct {
	getStatisticsUseCase   *statistics.GetStatisticsUseCase
	watchStatisticsUseCase *statistics.WatchStatisticsUseCase
	getDashboardUseCase    *statistics.GetDashboardUseCase
	location               *time.Location
	heartbeat              time.Duration
}

// NewStatisticsController creates a new statistics controller instance.
// The stream sends a ping event every heartbeat while idle.
func NewStatisticsController(
	getStatisticsUseCase *statistics.GetStatisticsUseCase,
	watchStatisticsUseCase *statistics.WatchStatisticsUseCase,
	getDashboardUseCase *statistics.GetDashboardUseCase,
	location *time.Location,
	heartbeat time.Duration,
) *StatisticsController {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &StatisticsController{
		getStatisticsUseCase:   getStatisticsUseCase,
		watchStatisticsUseCase: watchStatisticsUseCase,
		getDashboardUseCase:    getDashboardUseCase,
		location:               location,
		heartbeat:              heartbeat,
	}
}

// GetStatistics handles GET /statistics requests.
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getStatisticsUseCase.Execute(ctx.Request.Context(), c.statisticsInput(ctx, userID))
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(output.Range, output.Statistics, output.Cached, c.location))
}

// Stream handles GET /statistics/stream requests.
// Statistics are pushed as server-sent events whenever the period's records change.
func (c *StatisticsController) Stream(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	updates, err := c.watchStatisticsUseCase.Execute(ctx.Request.Context(), c.statisticsInput(ctx, userID))
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case <-ticker.C:
			ctx.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case update, ok := <-updates:
			if !ok {
				return false
			}
			if update.Err != nil {
				slog.Warn("Statistics stream update failed",
					"user_id", userID,
					"error", update.Err,
				)
				ctx.SSEvent("error", dto.ErrorResponse{
					Error: "Failed to refresh statistics",
					Code:  string(domainerror.ErrCodeStatisticsInternalError),
				})
				return true
			}
			ctx.SSEvent("statistics", dto.ToStatisticsResponse(update.Range, update.Statistics, false, c.location))
			return true
		}
	})
}

// Dashboard handles GET /dashboard requests.
func (c *StatisticsController) Dashboard(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), statistics.GetDashboardInput{UserID: userID})
	if err != nil {
		c.handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output, c.location))
}

func (c *StatisticsController) statisticsInput(ctx *gin.Context, userID uuid.UUID) statistics.GetStatisticsInput {
	query := readPeriodQuery(ctx)
	return statistics.GetStatisticsInput{
		UserID:    userID,
		Period:    query.Period,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	}
}

// handleStatisticsError handles statistics errors and returns appropriate HTTP responses.
func (c *StatisticsController) handleStatisticsError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		writeStatisticsError(ctx, statsErr)
		return
	}

	slog.Error("Statistics request failed", "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeStatisticsInternalError),
	})
}
