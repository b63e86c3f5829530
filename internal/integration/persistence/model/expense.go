package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_date"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category      string          `gorm:"type:varchar(30);not null;default:'other'"`
	Date          time.Time       `gorm:"not null;index:idx_expenses_user_date"`
	PaymentMethod string          `gorm:"type:varchar(10);not null;default:'cash'"`
	ShiftID       *uuid.UUID      `gorm:"type:uuid;index"`
	ReceiptRef    *string         `gorm:"type:varchar(500)"`
	Notes         string          `gorm:"type:text"`
	IsDeleted     bool            `gorm:"not null;default:false;index"`
	DeletedAt     *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:            m.ID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Category:      entity.ParseExpenseCategory(m.Category),
		Date:          m.Date,
		PaymentMethod: entity.ParsePaymentMethod(m.PaymentMethod),
		ShiftID:       m.ShiftID,
		ReceiptRef:    m.ReceiptRef,
		Notes:         m.Notes,
		IsDeleted:     m.IsDeleted,
		DeletedAt:     m.DeletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:            expense.ID,
		UserID:        expense.UserID,
		Amount:        expense.Amount,
		Category:      string(expense.Category),
		Date:          expense.Date.UTC(),
		PaymentMethod: string(expense.PaymentMethod),
		ShiftID:       expense.ShiftID,
		ReceiptRef:    expense.ReceiptRef,
		Notes:         expense.Notes,
		IsDeleted:     expense.IsDeleted,
		DeletedAt:     expense.DeletedAt,
		CreatedAt:     expense.CreatedAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}
