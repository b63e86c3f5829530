package docstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// shiftDocument is the stored shape of a shift. Money is kept as float64
// because Firestore has no decimal type.
type shiftDocument struct {
	UserID        string     `firestore:"user_id"`
	Date          time.Time  `firestore:"date"`
	Hours         int        `firestore:"hours"`
	Minutes       int        `firestore:"minutes"`
	GrossIncome   float64    `firestore:"gross_income"`
	Tips          float64    `firestore:"tips"`
	Bonus         float64    `firestore:"bonus"`
	FuelCost      float64    `firestore:"fuel_cost"`
	OtherExpenses float64    `firestore:"other_expenses"`
	OrdersCount   int        `firestore:"orders_count"`
	Kilometers    float64    `firestore:"kilometers"`
	OdometerStart *float64   `firestore:"odometer_start"`
	OdometerEnd   *float64   `firestore:"odometer_end"`
	Notes         string     `firestore:"notes"`
	IsDeleted     bool       `firestore:"is_deleted"`
	DeletedAt     *time.Time `firestore:"deleted_at"`
	CreatedAt     time.Time  `firestore:"created_at"`
	UpdatedAt     time.Time  `firestore:"updated_at"`
}

func shiftToDocument(shift *entity.Shift) shiftDocument {
	return shiftDocument{
		UserID:        shift.UserID.String(),
		Date:          shift.Date.UTC(),
		Hours:         shift.Hours,
		Minutes:       shift.Minutes,
		GrossIncome:   shift.GrossIncome.InexactFloat64(),
		Tips:          shift.Tips.InexactFloat64(),
		Bonus:         shift.Bonus.InexactFloat64(),
		FuelCost:      shift.FuelCost.InexactFloat64(),
		OtherExpenses: shift.OtherExpenses.InexactFloat64(),
		OrdersCount:   shift.OrdersCount,
		Kilometers:    shift.Kilometers.InexactFloat64(),
		OdometerStart: floatPtr(shift.OdometerStart),
		OdometerEnd:   floatPtr(shift.OdometerEnd),
		Notes:         shift.Notes,
		IsDeleted:     shift.IsDeleted,
		DeletedAt:     shift.DeletedAt,
		CreatedAt:     shift.CreatedAt,
		UpdatedAt:     shift.UpdatedAt,
	}
}

func (d shiftDocument) toEntity(id string) (*entity.Shift, error) {
	shiftID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}

	return &entity.Shift{
		ID:            shiftID,
		UserID:        userID,
		Date:          d.Date,
		Hours:         d.Hours,
		Minutes:       d.Minutes,
		GrossIncome:   decimal.NewFromFloat(d.GrossIncome),
		Tips:          decimal.NewFromFloat(d.Tips),
		Bonus:         decimal.NewFromFloat(d.Bonus),
		FuelCost:      decimal.NewFromFloat(d.FuelCost),
		OtherExpenses: decimal.NewFromFloat(d.OtherExpenses),
		OrdersCount:   d.OrdersCount,
		Kilometers:    decimal.NewFromFloat(d.Kilometers),
		OdometerStart: decimalPtr(d.OdometerStart),
		OdometerEnd:   decimalPtr(d.OdometerEnd),
		Notes:         d.Notes,
		IsDeleted:     d.IsDeleted,
		DeletedAt:     d.DeletedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

// expenseDocument is the stored shape of an expense.
type expenseDocument struct {
	UserID        string     `firestore:"user_id"`
	Amount        float64    `firestore:"amount"`
	Category      string     `firestore:"category"`
	Date          time.Time  `firestore:"date"`
	PaymentMethod string     `firestore:"payment_method"`
	ShiftID       *string    `firestore:"shift_id"`
	ReceiptRef    *string    `firestore:"receipt_ref"`
	Notes         string     `firestore:"notes"`
	IsDeleted     bool       `firestore:"is_deleted"`
	DeletedAt     *time.Time `firestore:"deleted_at"`
	CreatedAt     time.Time  `firestore:"created_at"`
	UpdatedAt     time.Time  `firestore:"updated_at"`
}

func expenseToDocument(expense *entity.Expense) expenseDocument {
	var shiftID *string
	if expense.ShiftID != nil {
		id := expense.ShiftID.String()
		shiftID = &id
	}

	return expenseDocument{
		UserID:        expense.UserID.String(),
		Amount:        expense.Amount.InexactFloat64(),
		Category:      string(expense.Category),
		Date:          expense.Date.UTC(),
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

func (d expenseDocument) toEntity(id string) (*entity.Expense, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, err
	}

	var shiftID *uuid.UUID
	if d.ShiftID != nil {
		parsed, err := uuid.Parse(*d.ShiftID)
		if err != nil {
			return nil, err
		}
		shiftID = &parsed
	}

	return &entity.Expense{
		ID:            expenseID,
		UserID:        userID,
		Amount:        decimal.NewFromFloat(d.Amount),
		Category:      entity.ParseExpenseCategory(d.Category),
		Date:          d.Date,
		PaymentMethod: entity.ParsePaymentMethod(d.PaymentMethod),
		ShiftID:       shiftID,
		ReceiptRef:    d.ReceiptRef,
		Notes:         d.Notes,
		IsDeleted:     d.IsDeleted,
		DeletedAt:     d.DeletedAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
