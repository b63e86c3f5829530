package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/domain/valueobject"
	"github.com/gigledger/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A second connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.PasswordResetTokenModel{},
		&model.ShiftModel{},
		&model.ExpenseModel{},
		&model.UserSettingsModel{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func newTestShift(userID uuid.UUID, date time.Time, gross string) *entity.Shift {
	return entity.NewShift(userID, entity.ShiftInput{
		Date:        date,
		Hours:       5,
		Minutes:     30,
		GrossIncome: decimal.RequireFromString(gross),
		Tips:        decimal.NewFromInt(5),
		OrdersCount: 8,
		Kilometers:  decimal.RequireFromString("42.5"),
	}, day(1))
}

func TestShiftRepositoryRoundTrip(t *testing.T) {
	repo := NewShiftRepository(openTestDB(t), time.Second)
	ctx := context.Background()

	shift := newTestShift(uuid.New(), day(13), "60")
	start := decimal.NewFromInt(1000)
	shift.OdometerStart = &start

	if err := repo.Create(ctx, shift); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, shift.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.GrossIncome.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected gross 60, got %s", found.GrossIncome)
	}
	if !found.Kilometers.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("expected 42.5 km, got %s", found.Kilometers)
	}
	if found.OdometerStart == nil || !found.OdometerStart.Equal(start) {
		t.Errorf("expected odometer start %s, got %v", start, found.OdometerStart)
	}
	if found.OdometerEnd != nil {
		t.Errorf("expected no odometer end, got %s", found.OdometerEnd)
	}
	if !found.Date.Equal(shift.Date) {
		t.Errorf("expected date %v, got %v", shift.Date, found.Date)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrShiftNotFound) {
		t.Errorf("expected ErrShiftNotFound, got %v", err)
	}
}

func TestShiftModelDistancePrecision(t *testing.T) {
	parsed, err := schema.Parse(&model.ShiftModel{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}

	for _, name := range []string{"Kilometers", "OdometerStart", "OdometerEnd"} {
		field := parsed.LookUpField(name)
		if field == nil {
			t.Fatalf("expected field %s", name)
		}
		if got := field.TagSettings["TYPE"]; got != "decimal(10,2)" {
			t.Errorf("expected %s column decimal(10,2), got %s", name, got)
		}
	}

	repo := NewShiftRepository(openTestDB(t), time.Second)
	shift := newTestShift(uuid.New(), day(13), "60")
	shift.Kilometers = decimal.RequireFromString("45.25")
	if err := repo.Create(context.Background(), shift); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := repo.FindByID(context.Background(), shift.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Kilometers.Equal(decimal.RequireFromString("45.25")) {
		t.Errorf("expected 45.25 km, got %s", found.Kilometers)
	}
}

func TestShiftRepositoryFindByFilter(t *testing.T) {
	repo := NewShiftRepository(openTestDB(t), time.Second)
	ctx := context.Background()

	userID := uuid.New()
	early := newTestShift(userID, day(1), "10")
	mid := newTestShift(userID, day(10), "20")
	late := newTestShift(userID, day(20), "30")
	foreign := newTestShift(uuid.New(), day(10), "40")
	binned := newTestShift(userID, day(11), "50")
	binned.SoftDelete(day(12))

	for _, s := range []*entity.Shift{early, mid, late, foreign, binned} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	rangeFilter := valueobject.NewDayRange(day(5), day(20))

	tests := []struct {
		name     string
		filter   adapter.RecordFilter
		expected []uuid.UUID
	}{
		{
			name:     "all live records newest first",
			filter:   adapter.RecordFilter{UserID: userID},
			expected: []uuid.UUID{late.ID, mid.ID, early.ID},
		},
		{
			name:     "inclusive range",
			filter:   adapter.RecordFilter{UserID: userID, Range: &rangeFilter},
			expected: []uuid.UUID{late.ID, mid.ID},
		},
		{
			name:     "recycle bin",
			filter:   adapter.RecordFilter{UserID: userID, Deleted: true},
			expected: []uuid.UUID{binned.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifts, err := repo.FindByFilter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(shifts) != len(tt.expected) {
				t.Fatalf("expected %d shifts, got %d", len(tt.expected), len(shifts))
			}
			for i, id := range tt.expected {
				if shifts[i].ID != id {
					t.Errorf("expected shift %d to be %s, got %s", i, id, shifts[i].ID)
				}
			}
		})
	}
}

func TestShiftRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewShiftRepository(openTestDB(t), time.Second)
	ctx := context.Background()

	userID := uuid.New()
	shift := newTestShift(userID, day(13), "60")
	if err := repo.Create(ctx, shift); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	shift.SoftDelete(day(14))
	if err := repo.Update(ctx, shift); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, err := repo.FindByID(ctx, shift.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.IsDeleted || found.DeletedAt == nil {
		t.Errorf("expected shift to be soft-deleted")
	}

	if err := repo.Delete(ctx, shift.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(ctx, shift.ID); !errors.Is(err, domainerror.ErrShiftNotFound) {
		t.Errorf("expected ErrShiftNotFound, got %v", err)
	}

	other := newTestShift(userID, day(15), "70")
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.DeleteByUserID(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	left, err := repo.FindByFilter(ctx, adapter.RecordFilter{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("expected no shifts, got %d", len(left))
	}
}

func TestShiftRepositoryObserve(t *testing.T) {
	repo := NewShiftRepository(openTestDB(t), minPollInterval)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := uuid.New()
	snapshots, err := repo.Observe(ctx, adapter.RecordFilter{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := receiveShiftSnapshot(t, snapshots)
	if len(first.Shifts) != 0 {
		t.Fatalf("expected empty first snapshot, got %d", len(first.Shifts))
	}

	if err := repo.Create(context.Background(), newTestShift(userID, day(13), "60")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := receiveShiftSnapshot(t, snapshots)
	if len(second.Shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(second.Shifts))
	}

	cancel()
	for range snapshots {
	}
}

func receiveShiftSnapshot(t *testing.T, ch <-chan adapter.ShiftSnapshot) adapter.ShiftSnapshot {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		if !ok {
			t.Fatalf("snapshot channel closed")
		}
		if snapshot.Err != nil {
			t.Fatalf("unexpected snapshot error: %v", snapshot.Err)
		}
		return snapshot
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for snapshot")
	}
	return adapter.ShiftSnapshot{}
}

func TestExpenseRepositoryRoundTrip(t *testing.T) {
	repo := NewExpenseRepository(openTestDB(t), time.Second)
	ctx := context.Background()

	userID := uuid.New()
	shiftID := uuid.New()
	receipt := "receipts/fuel-13.jpg"
	expense := entity.NewExpense(userID, entity.ExpenseInput{
		Amount:        decimal.RequireFromString("45.90"),
		Category:      entity.ExpenseCategoryFuel,
		Date:          day(13),
		PaymentMethod: entity.PaymentMethodCard,
		ShiftID:       &shiftID,
		ReceiptRef:    &receipt,
	}, day(1))
	if err := repo.Create(ctx, expense); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(ctx, expense.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Amount.Equal(decimal.RequireFromString("45.9")) {
		t.Errorf("expected amount 45.9, got %s", found.Amount)
	}
	if found.Category != entity.ExpenseCategoryFuel {
		t.Errorf("expected category fuel, got %s", found.Category)
	}
	if found.PaymentMethod != entity.PaymentMethodCard {
		t.Errorf("expected card payment, got %s", found.PaymentMethod)
	}
	if found.ShiftID == nil || *found.ShiftID != shiftID {
		t.Errorf("expected linked shift %s, got %v", shiftID, found.ShiftID)
	}
	if found.ReceiptRef == nil || *found.ReceiptRef != receipt {
		t.Errorf("expected receipt %s, got %v", receipt, found.ReceiptRef)
	}

	week := valueobject.NewDayRange(day(11), day(17))
	inWeek, err := repo.FindByFilter(ctx, adapter.RecordFilter{UserID: userID, Range: &week})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inWeek) != 1 {
		t.Errorf("expected 1 expense, got %d", len(inWeek))
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrExpenseNotFound) {
		t.Errorf("expected ErrExpenseNotFound, got %v", err)
	}
}

func TestSettingsRepositoryUpsert(t *testing.T) {
	repo := NewSettingsRepository(openTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	if _, err := repo.FindByUserID(ctx, userID); !errors.Is(err, domainerror.ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	settings := entity.NewUserSettings(userID)
	if err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	daily := decimal.NewFromInt(120)
	settings.DailyGoal = &daily
	settings.VATRate = decimal.RequireFromString("0.13")
	settings.Theme = entity.ThemeDark
	if err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.DailyGoal == nil || !found.DailyGoal.Equal(daily) {
		t.Errorf("expected daily goal 120, got %v", found.DailyGoal)
	}
	if !found.VATRate.Equal(decimal.RequireFromString("0.13")) {
		t.Errorf("expected VAT 0.13, got %s", found.VATRate)
	}
	if found.Theme != entity.ThemeDark {
		t.Errorf("expected dark theme, got %s", found.Theme)
	}
	if found.WeeklyGoal != nil {
		t.Errorf("expected weekly goal unset, got %s", found.WeeklyGoal)
	}

	if err := repo.DeleteByUserID(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByUserID(ctx, userID); !errors.Is(err, domainerror.ErrSettingsNotFound) {
		t.Errorf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestUserRepositoryCredentials(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	tokens := NewTokenRepository(db)
	ctx := context.Background()

	user := entity.NewUser("driver@example.com", "Driver", "hash", time.Now().UTC())
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pin := "pin-hash"
	if err := repo.UpdatePin(ctx, user.ID, &pin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "driver@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.HasPin() || *found.PinHash != pin {
		t.Errorf("expected pin hash %s, got %v", pin, found.PinHash)
	}
	if found.PasswordHash != "new-hash" {
		t.Errorf("expected password hash new-hash, got %s", found.PasswordHash)
	}

	if err := repo.UpdatePin(ctx, user.ID, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, _ = repo.FindByID(ctx, user.ID)
	if found.HasPin() {
		t.Errorf("expected pin to be cleared")
	}

	if err := repo.UpdatePassword(ctx, uuid.New(), "x"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	exists, err := repo.ExistsByEmail(ctx, "driver@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Errorf("expected user to exist")
	}

	expiry := time.Now().UTC().Add(time.Hour)
	if err := tokens.SaveRefreshToken(ctx, "refresh", user.ID, expiry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tokens.SavePasswordResetToken(ctx, "reset", user.ID, user.Email, expiry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.FindByID(ctx, user.ID); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	var remaining int64
	db.Model(&model.RefreshTokenModel{}).Where("user_id = ?", user.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected refresh tokens to be deleted, got %d", remaining)
	}
	db.Model(&model.PasswordResetTokenModel{}).Where("user_id = ?", user.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("expected reset tokens to be deleted, got %d", remaining)
	}
}

func TestTokenRepositoryRefreshTokens(t *testing.T) {
	db := openTestDB(t)
	repo := NewTokenRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	if err := repo.SaveRefreshToken(ctx, "phone", userID, now.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveRefreshToken(ctx, "tablet", userID, now.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SaveRefreshToken(ctx, "old", userID, now.Add(-time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored model.RefreshTokenModel
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TokenHash == "phone" || len(stored.TokenHash) != 64 {
		t.Errorf("expected a sha256 digest, got %q", stored.TokenHash)
	}

	tests := []struct {
		name     string
		token    string
		expected bool
	}{
		{name: "live token", token: "phone", expected: true},
		{name: "replayed token", token: "phone", expected: false},
		{name: "expired token", token: "old", expected: false},
		{name: "unknown token", token: "laptop", expected: false},
	}
	for _, tt := range tests {
		live, err := repo.ConsumeRefreshToken(ctx, tt.token, now)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if live != tt.expected {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, live)
		}
	}

	if err := repo.RevokeUserRefreshTokens(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if live, _ := repo.ConsumeRefreshToken(ctx, "tablet", now); live {
		t.Errorf("expected tablet token to be revoked")
	}

	purged, err := repo.PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != 1 {
		t.Errorf("expected 1 purged token, got %d", purged)
	}
}

func TestTokenRepositoryPasswordResetTokens(t *testing.T) {
	repo := NewTokenRepository(openTestDB(t))
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	if err := repo.SavePasswordResetToken(ctx, "fresh", userID, "driver@example.com", now.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SavePasswordResetToken(ctx, "stale", userID, "driver@example.com", now.Add(-time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := repo.ConsumePasswordResetToken(ctx, "fresh", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.UserID != userID || token.Email != "driver@example.com" {
		t.Errorf("expected token for %s, got %s %s", userID, token.UserID, token.Email)
	}

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{name: "used", token: "fresh", expected: domainerror.ErrInvalidResetToken},
		{name: "expired", token: "stale", expected: domainerror.ErrExpiredResetToken},
		{name: "unknown", token: "other", expected: domainerror.ErrInvalidResetToken},
	}
	for _, tt := range tests {
		if _, err := repo.ConsumePasswordResetToken(ctx, tt.token, now); !errors.Is(err, tt.expected) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, err)
		}
	}
}
