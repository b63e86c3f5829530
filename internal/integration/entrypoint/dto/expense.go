package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
	"github.com/gigledger/backend/internal/domain/valueobject"
)

// ErrInvalidShiftReference is returned when shift_id is not a valid UUID.
var ErrInvalidShiftReference = errors.New("invalid shift_id")

// ExpenseRequest represents the request body for creating or replacing an expense.
type ExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category" binding:"required"`
	Date          string          `json:"date" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
	ShiftID       *string         `json:"shift_id"`
	ReceiptRef    *string         `json:"receipt_ref" binding:"omitempty,max=500"`
	Notes         string          `json:"notes" binding:"max=500"`
}

// ToInput converts the request into an expense input with the date in loc.
func (r ExpenseRequest) ToInput(loc *time.Location) (entity.ExpenseInput, error) {
	date, err := ParseDate(r.Date, loc)
	if err != nil {
		return entity.ExpenseInput{}, err
	}

	var shiftID *uuid.UUID
	if r.ShiftID != nil && *r.ShiftID != "" {
		parsed, err := uuid.Parse(*r.ShiftID)
		if err != nil {
			return entity.ExpenseInput{}, fmt.Errorf("%w: %v", ErrInvalidShiftReference, err)
		}
		shiftID = &parsed
	}

	return entity.ExpenseInput{
		Amount:        r.Amount,
		Category:      entity.ExpenseCategory(r.Category),
		Date:          date,
		PaymentMethod: entity.PaymentMethod(r.PaymentMethod),
		ShiftID:       shiftID,
		ReceiptRef:    r.ReceiptRef,
		Notes:         r.Notes,
	}, nil
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID            string     `json:"id"`
	Amount        float64    `json:"amount"`
	Category      string     `json:"category"`
	CategoryLabel string     `json:"category_label"`
	CategoryIcon  string     `json:"category_icon"`
	Date          string     `json:"date"`
	PaymentMethod string     `json:"payment_method"`
	ShiftID       *string    `json:"shift_id"`
	ReceiptRef    *string    `json:"receipt_ref"`
	Notes         string     `json:"notes"`
	IsDeleted     bool       `json:"is_deleted"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ExpenseListResponse represents a list of expenses.
type ExpenseListResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	Count     int               `json:"count"`
	Total     float64           `json:"total"`
	StartDate *string           `json:"start_date,omitempty"`
	EndDate   *string           `json:"end_date,omitempty"`
}

// ExpenseCategoryResponse represents one selectable expense category.
type ExpenseCategoryResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense, loc *time.Location) ExpenseResponse {
	info := expense.Category.Info()

	var shiftID *string
	if expense.ShiftID != nil {
		id := expense.ShiftID.String()
		shiftID = &id
	}

	return ExpenseResponse{
		ID:            expense.ID.String(),
		Amount:        Money(expense.Amount),
		Category:      string(expense.Category),
		CategoryLabel: info.Label,
		CategoryIcon:  info.Icon,
		Date:          FormatDate(expense.Date, loc),
		PaymentMethod: string(expense.PaymentMethod),
		ShiftID:       shiftID,
		ReceiptRef:    expense.ReceiptRef,
		Notes:         expense.Notes,
		IsDeleted:     expense.IsDeleted,
		DeletedAt:     expense.DeletedAt,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}

// ToExpenseListResponse converts expenses and their optional range to an ExpenseListResponse DTO.
func ToExpenseListResponse(expenses []*entity.Expense, total decimal.Decimal, dateRange *valueobject.DateRange, loc *time.Location) ExpenseListResponse {
	response := ExpenseListResponse{
		Expenses: make([]ExpenseResponse, len(expenses)),
		Count:    len(expenses),
		Total:    Money(total),
	}
	for i, expense := range expenses {
		response.Expenses[i] = ToExpenseResponse(expense, loc)
	}
	response.StartDate, response.EndDate = rangeBounds(dateRange, loc)
	return response
}

// ToExpenseCategoryResponses converts category infos to response DTOs.
func ToExpenseCategoryResponses(categories []entity.ExpenseCategoryInfo) []ExpenseCategoryResponse {
	response := make([]ExpenseCategoryResponse, len(categories))
	for i, info := range categories {
		response[i] = ExpenseCategoryResponse{
			Value: string(info.Category),
			Label: info.Label,
			Icon:  info.Icon,
		}
	}
	return response
}
