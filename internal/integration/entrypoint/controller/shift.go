package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gigledger/backend/internal/application/usecase/shift"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/entrypoint/dto"
)

// ShiftController handles shift endpoints.
type ShiftController struct {
	createUseCase          *shift.CreateShiftUseCase
	getUseCase             *shift.GetShiftUseCase
	listUseCase            *shift.ListShiftsUseCase
	updateUseCase          *shift.UpdateShiftUseCase
	deleteUseCase          *shift.DeleteShiftUseCase
	restoreUseCase         *shift.RestoreShiftUseCase
	permanentDeleteUseCase *shift.PermanentDeleteShiftUseCase
	location               *time.Location
}

// NewShiftController creates a new shift controller instance.
func NewShiftController(
	createUseCase *shift.CreateShiftUseCase,
	getUseCase *shift.GetShiftUseCase,
	listUseCase *shift.ListShiftsUseCase,
	updateUseCase *shift.UpdateShiftUseCase,
	deleteUseCase *shift.DeleteShiftUseCase,
	restoreUseCase *shift.RestoreShiftUseCase,
	permanentDeleteUseCase *shift.PermanentDeleteShiftUseCase,
	location *time.Location,
) *ShiftController {
	return &ShiftController{
		createUseCase:          createUseCase,
		getUseCase:             getUseCase,
		listUseCase:            listUseCase,
		updateUseCase:          updateUseCase,
		deleteUseCase:          deleteUseCase,
		restoreUseCase:         restoreUseCase,
		permanentDeleteUseCase: permanentDeleteUseCase,
		location:               location,
	}
}

// Create handles POST /shifts requests.
func (c *ShiftController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := c.bindShiftRequest(ctx)
	if !ok {
		return
	}
	shiftInput, err := req.ToInput(c.location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidShiftDate),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), shift.CreateShiftInput{
		UserID: userID,
		Shift:  shiftInput,
	})
	if err != nil {
		c.handleShiftError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToShiftResponse(output.Shift, c.location))
}

// List handles GET /shifts requests.
func (c *ShiftController) List(ctx *gin.Context) {
	c.list(ctx, false)
}

// ListDeleted handles GET /shifts/deleted requests.
func (c *ShiftController) ListDeleted(ctx *gin.Context) {
	c.list(ctx, true)
}

func (c *ShiftController) list(ctx *gin.Context, deleted bool) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	query := readPeriodQuery(ctx)
	output, err := c.listUseCase.Execute(ctx.Request.Context(), shift.ListShiftsInput{
		UserID:    userID,
		Period:    query.Period,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Deleted:   deleted,
	})
	if err != nil {
		c.handleShiftError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShiftListResponse(output.Shifts, output.Range, c.location))
}

// Get handles GET /shifts/:id requests.
func (c *ShiftController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	shiftID, ok := parseIDParam(ctx, string(domainerror.ErrCodeShiftNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), shift.GetShiftInput{
		ShiftID: shiftID,
		UserID:  userID,
	})
	if err != nil {
		c.handleShiftError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ShiftDetailResponse{
		ShiftResponse: dto.ToShiftResponse(output.Shift, c.location),
		Earnings:      dto.ToEarningsResponse(output.Earnings),
	})
}

// Update handles PUT /shifts/:id requests.
func (c *ShiftController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	shiftID, ok := parseIDParam(ctx, string(domainerror.ErrCodeShiftNotFound))
	if !ok {
		return
	}

	req, ok := c.bindShiftRequest(ctx)
	if !ok {
		return
	}
	shiftInput, err := req.ToInput(c.location)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidShiftDate),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), shift.UpdateShiftInput{
		ShiftID: shiftID,
		UserID:  userID,
		Shift:   shiftInput,
	})
	if err != nil {
		c.handleShiftError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShiftResponse(output.Shift, c.location))
}

// Delete handles DELETE /shifts/:id requests by moving the shift to the recycle bin.
func (c *ShiftController) Delete(ctx *gin.Context) {
	c.runDelete(ctx, c.deleteUseCase.Execute)
}

// Restore handles POST /shifts/:id/restore requests.
func (c *ShiftController) Restore(ctx *gin.Context) {
	c.runDelete(ctx, c.restoreUseCase.Execute)
}

// PermanentDelete handles DELETE /shifts/:id/permanent requests.
func (c *ShiftController) PermanentDelete(ctx *gin.Context) {
	c.runDelete(ctx, c.permanentDeleteUseCase.Execute)
}

type deleteShiftFunc func(ctx context.Context, input shift.DeleteShiftInput) (*shift.DeleteShiftOutput, error)

func (c *ShiftController) runDelete(ctx *gin.Context, execute deleteShiftFunc) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	shiftID, ok := parseIDParam(ctx, string(domainerror.ErrCodeShiftNotFound))
	if !ok {
		return
	}

	_, err := execute(ctx.Request.Context(), shift.DeleteShiftInput{
		ShiftID: shiftID,
		UserID:  userID,
	})
	if err != nil {
		c.handleShiftError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ShiftController) bindShiftRequest(ctx *gin.Context) (dto.ShiftRequest, bool) {
	var req dto.ShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingShiftFields),
		})
		return req, false
	}
	return req, true
}

// handleShiftError handles shift errors and returns appropriate HTTP responses.
func (c *ShiftController) handleShiftError(ctx *gin.Context, err error) {
	var shiftErr *domainerror.ShiftError
	if errors.As(err, &shiftErr) {
		response := dto.ErrorResponse{
			Error: shiftErr.Message,
			Code:  string(shiftErr.Code),
		}
		if shiftErr.Reason != "" {
			response.Details = map[string]string{"reason": shiftErr.Reason}
		}
		ctx.JSON(c.getStatusCodeForShiftError(shiftErr.Code), response)
		return
	}

	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		writeStatisticsError(ctx, statsErr)
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForShiftError maps shift error codes to HTTP status codes.
func (c *ShiftController) getStatusCodeForShiftError(code domainerror.ShiftErrorCode) int {
	switch code {
	case domainerror.ErrCodeShiftNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedShift:
		return http.StatusForbidden
	case domainerror.ErrCodeShiftRejected:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeShiftNotDeleted,
		domainerror.ErrCodeShiftAlreadyDeleted:
		return http.StatusConflict
	case domainerror.ErrCodeMissingShiftFields,
		domainerror.ErrCodeInvalidShiftDate,
		domainerror.ErrCodeInvalidShiftListFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
