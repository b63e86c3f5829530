package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/usecase/statistics"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/entrypoint/dto"
	"github.com/gigledger/backend/internal/integration/entrypoint/middleware"
)

// periodQuery holds the period selection shared by list and statistics endpoints.
type periodQuery struct {
	Period    statistics.Period
	StartDate string
	EndDate   string
}

// requireUserID reads the authenticated user or writes a 401 response.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam reads the :id path parameter or writes a 400 response with code.
func parseIDParam(ctx *gin.Context, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid ID format",
			Code:  code,
		})
		return uuid.Nil, false
	}
	return id, true
}

func readPeriodQuery(ctx *gin.Context) periodQuery {
	return periodQuery{
		Period:    statistics.Period(ctx.Query("period")),
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	}
}

// writeStatisticsError renders an error from period resolution.
func writeStatisticsError(ctx *gin.Context, statsErr *domainerror.StatisticsError) {
	status := http.StatusBadRequest
	if statsErr.Code == domainerror.ErrCodeStatisticsInternalError {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: statsErr.Message,
		Code:  string(statsErr.Code),
	})
}
