package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gigledger/backend/internal/application/usecase/expense"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createUseCase          *expense.CreateExpenseUseCase
	getUseCase             *expense.GetExpenseUseCase
	listUseCase            *expense.ListExpensesUseCase
	updateUseCase          *expense.UpdateExpenseUseCase
	deleteUseCase          *expense.DeleteExpenseUseCase
	restoreUseCase         *expense.RestoreExpenseUseCase
	permanentDeleteUseCase *expense.PermanentDeleteExpenseUseCase
	location               *time.Location
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createUseCase *expense.CreateExpenseUseCase,
	getUseCase *expense.GetExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	restoreUseCase *expense.RestoreExpenseUseCase,
	permanentDeleteUseCase *expense.PermanentDeleteExpenseUseCase,
	location *time.Location,
) *ExpenseController {
	return &ExpenseController{
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

// Categories handles GET /expenses/categories requests.
func (c *ExpenseController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToExpenseCategoryResponses(expense.ListCategories()))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	expenseInput, ok := c.bindExpenseInput(ctx)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:  userID,
		Expense: expenseInput,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense, c.location))
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	c.list(ctx, false)
}

// ListDeleted handles GET /expenses/deleted requests.
func (c *ExpenseController) ListDeleted(ctx *gin.Context) {
	c.list(ctx, true)
}

func (c *ExpenseController) list(ctx *gin.Context, deleted bool) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	query := readPeriodQuery(ctx)
	input := expense.ListExpensesInput{
		UserID:    userID,
		Period:    query.Period,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Deleted:   deleted,
	}

	if raw := ctx.Query("category"); raw != "" {
		category := entity.ParseExpenseCategory(raw)
		if string(category) != raw {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Unknown expense category",
				Code:  string(domainerror.ErrCodeInvalidExpenseListFilter),
			})
			return
		}
		input.Category = &category
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses, output.Total, output.Range, c.location))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(ctx, string(domainerror.ErrCodeExpenseNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense, c.location))
}

// Update handles PUT /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(ctx, string(domainerror.ErrCodeExpenseNotFound))
	if !ok {
		return
	}

	expenseInput, ok := c.bindExpenseInput(ctx)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), expense.UpdateExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
		Expense:   expenseInput,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense, c.location))
}

// Delete handles DELETE /expenses/:id requests by moving the expense to the recycle bin.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	c.runDelete(ctx, c.deleteUseCase.Execute)
}

// Restore handles POST /expenses/:id/restore requests.
func (c *ExpenseController) Restore(ctx *gin.Context) {
	c.runDelete(ctx, c.restoreUseCase.Execute)
}

// PermanentDelete handles DELETE /expenses/:id/permanent requests.
func (c *ExpenseController) PermanentDelete(ctx *gin.Context) {
	c.runDelete(ctx, c.permanentDeleteUseCase.Execute)
}

type deleteExpenseFunc func(ctx context.Context, input expense.DeleteExpenseInput) (*expense.DeleteExpenseOutput, error)

func (c *ExpenseController) runDelete(ctx *gin.Context, execute deleteExpenseFunc) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	expenseID, ok := parseIDParam(ctx, string(domainerror.ErrCodeExpenseNotFound))
	if !ok {
		return
	}

	_, err := execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ExpenseController) bindExpenseInput(ctx *gin.Context) (entity.ExpenseInput, bool) {
	var req dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingExpenseFields),
		})
		return entity.ExpenseInput{}, false
	}

	input, err := req.ToInput(c.location)
	if err != nil {
		if errors.Is(err, dto.ErrInvalidShiftReference) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid shift_id format",
				Code:  string(domainerror.ErrCodeMissingExpenseFields),
			})
			return entity.ExpenseInput{}, false
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidExpenseDate),
		})
		return entity.ExpenseInput{}, false
	}
	return input, true
}

// handleExpenseError handles expense errors and returns appropriate HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		response := dto.ErrorResponse{
			Error: expenseErr.Message,
			Code:  string(expenseErr.Code),
		}
		if expenseErr.Reason != "" {
			response.Details = map[string]string{"reason": expenseErr.Reason}
		}
		ctx.JSON(c.getStatusCodeForExpenseError(expenseErr.Code), response)
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound,
		domainerror.ErrCodeExpenseShiftNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnauthorizedExpense:
		return http.StatusForbidden
	case domainerror.ErrCodeExpenseRejected:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeExpenseNotDeleted,
		domainerror.ErrCodeExpenseAlreadyDeleted:
		return http.StatusConflict
	case domainerror.ErrCodeMissingExpenseFields,
		domainerror.ErrCodeInvalidExpenseDate,
		domainerror.ErrCodeInvalidExpenseListFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
