// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the closed set of expense categories.
type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryTax         ExpenseCategory = "tax"
	ExpenseCategoryEquipment   ExpenseCategory = "equipment"
	ExpenseCategoryPhone       ExpenseCategory = "phone"
	ExpenseCategoryRoadTax     ExpenseCategory = "road-tax"
	ExpenseCategoryInspection  ExpenseCategory = "inspection"
	ExpenseCategoryFines       ExpenseCategory = "fines"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// ExpenseCategoryInfo holds the display metadata of a category.
type ExpenseCategoryInfo struct {
	Category ExpenseCategory
	Label    string
	Icon     string
}

var expenseCategories = []ExpenseCategoryInfo{
	{Category: ExpenseCategoryFuel, Label: "Fuel", Icon: "⛽"},
	{Category: ExpenseCategoryMaintenance, Label: "Maintenance", Icon: "🔧"},
	{Category: ExpenseCategoryInsurance, Label: "Insurance", Icon: "🛡️"},
	{Category: ExpenseCategoryTax, Label: "Tax", Icon: "🧾"},
	{Category: ExpenseCategoryEquipment, Label: "Equipment", Icon: "🎒"},
	{Category: ExpenseCategoryPhone, Label: "Phone", Icon: "📱"},
	{Category: ExpenseCategoryRoadTax, Label: "Road Tax", Icon: "🛣️"},
	{Category: ExpenseCategoryInspection, Label: "Inspection", Icon: "🔍"},
	{Category: ExpenseCategoryFines, Label: "Fines", Icon: "🚨"},
	{Category: ExpenseCategoryOther, Label: "Other", Icon: "📦"},
}

// ExpenseCategories returns every category in display order.
func ExpenseCategories() []ExpenseCategoryInfo {
	out := make([]ExpenseCategoryInfo, len(expenseCategories))
	copy(out, expenseCategories)
	return out
}

// ParseExpenseCategory maps a raw value to a category. Unknown values map to other.
func ParseExpenseCategory(raw string) ExpenseCategory {
	for _, info := range expenseCategories {
		if string(info.Category) == raw {
			return info.Category
		}
	}
	return ExpenseCategoryOther
}

// Info returns the display metadata of the category.
func (c ExpenseCategory) Info() ExpenseCategoryInfo {
	for _, info := range expenseCategories {
		if info.Category == c {
			return info
		}
	}
	return expenseCategories[len(expenseCategories)-1]
}

// PaymentMethod represents how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// ParsePaymentMethod maps a raw value to a payment method, defaulting to cash.
func ParsePaymentMethod(raw string) PaymentMethod {
	if PaymentMethod(raw) == PaymentMethodCard {
		return PaymentMethodCard
	}
	return PaymentMethodCash
}

// Expense represents one logged cost item.
type Expense struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Category      ExpenseCategory
	Date          time.Time
	PaymentMethod PaymentMethod
	ShiftID       *uuid.UUID // Optional link to the shift the cost belongs to
	ReceiptRef    *string
	Notes         string
	IsDeleted     bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExpenseInput carries the user-editable fields of an expense.
type ExpenseInput struct {
	Amount        decimal.Decimal
	Category      ExpenseCategory
	Date          time.Time
	PaymentMethod PaymentMethod
	ShiftID       *uuid.UUID
	ReceiptRef    *string
	Notes         string
}

// NewExpense creates a new Expense entity for the given user, stamped at now.
func NewExpense(userID uuid.UUID, input ExpenseInput, now time.Time) *Expense {
	now = now.UTC()

	expense := &Expense{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
	}
	expense.Apply(input, now)

	return expense
}

// Apply replaces the editable fields of the expense and sets UpdatedAt to at.
func (e *Expense) Apply(input ExpenseInput, at time.Time) {
	e.Amount = input.Amount
	e.Category = ParseExpenseCategory(string(input.Category))
	e.Date = input.Date
	e.PaymentMethod = ParsePaymentMethod(string(input.PaymentMethod))
	e.ShiftID = input.ShiftID
	e.ReceiptRef = input.ReceiptRef
	e.Notes = input.Notes
	e.UpdatedAt = at.UTC()
}

// SoftDelete moves the expense to the recycle bin.
func (e *Expense) SoftDelete(at time.Time) {
	at = at.UTC()
	e.IsDeleted = true
	e.DeletedAt = &at
	e.UpdatedAt = at
}

// Restore brings a soft-deleted expense back.
func (e *Expense) Restore(at time.Time) {
	e.IsDeleted = false
	e.DeletedAt = nil
	e.UpdatedAt = at.UTC()
}
