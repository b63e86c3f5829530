package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
)

// ShiftModel represents the shifts table in the database.
type ShiftModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index:idx_shifts_user_date"`
	Date          time.Time        `gorm:"not null;index:idx_shifts_user_date"`
	Hours         int              `gorm:"not null;default:0"`
	Minutes       int              `gorm:"not null;default:0"`
	GrossIncome   decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Tips          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Bonus         decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	FuelCost      decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	OtherExpenses decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	OrdersCount   int              `gorm:"not null;default:0"`
	Kilometers    decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	OdometerStart *decimal.Decimal `gorm:"type:decimal(10,2)"`
	OdometerEnd   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Notes         string           `gorm:"type:text"`
	IsDeleted     bool             `gorm:"not null;default:false;index"`
	DeletedAt     *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ShiftModel.
func (ShiftModel) TableName() string {
	return "shifts"
}

// ToEntity converts a ShiftModel to a domain Shift entity.
func (m *ShiftModel) ToEntity() *entity.Shift {
	return &entity.Shift{
		ID:            m.ID,
		UserID:        m.UserID,
		Date:          m.Date,
		Hours:         m.Hours,
		Minutes:       m.Minutes,
		GrossIncome:   m.GrossIncome,
		Tips:          m.Tips,
		Bonus:         m.Bonus,
		FuelCost:      m.FuelCost,
		OtherExpenses: m.OtherExpenses,
		OrdersCount:   m.OrdersCount,
		Kilometers:    m.Kilometers,
		OdometerStart: m.OdometerStart,
		OdometerEnd:   m.OdometerEnd,
		Notes:         m.Notes,
		IsDeleted:     m.IsDeleted,
		DeletedAt:     m.DeletedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ShiftFromEntity creates a ShiftModel from a domain Shift entity.
// Dates are stored in UTC so range comparisons stay consistent across drivers.
func ShiftFromEntity(shift *entity.Shift) *ShiftModel {
	return &ShiftModel{
		ID:            shift.ID,
		UserID:        shift.UserID,
		Date:          shift.Date.UTC(),
		Hours:         shift.Hours,
		Minutes:       shift.Minutes,
		GrossIncome:   shift.GrossIncome,
		Tips:          shift.Tips,
		Bonus:         shift.Bonus,
		FuelCost:      shift.FuelCost,
		OtherExpenses: shift.OtherExpenses,
		OrdersCount:   shift.OrdersCount,
		Kilometers:    shift.Kilometers,
		OdometerStart: shift.OdometerStart,
		OdometerEnd:   shift.OdometerEnd,
		Notes:         shift.Notes,
		IsDeleted:     shift.IsDeleted,
		DeletedAt:     shift.DeletedAt,
		CreatedAt:     shift.CreatedAt,
		UpdatedAt:     shift.UpdatedAt,
	}
}
