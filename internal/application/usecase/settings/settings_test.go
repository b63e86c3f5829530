package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

type memorySettingsRepository struct {
	settings map[uuid.UUID]*entity.UserSettings
	err      error
}

func newMemorySettingsRepository() *memorySettingsRepository {
	return &memorySettingsRepository{settings: make(map[uuid.UUID]*entity.UserSettings)}
}

func (r *memorySettingsRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	settings, ok := r.settings[userID]
	if !ok {
		return nil, domainerror.ErrSettingsNotFound
	}
	clone := *settings
	return &clone, nil
}

func (r *memorySettingsRepository) Upsert(_ context.Context, settings *entity.UserSettings) error {
	r.settings[settings.UserID] = settings
	return nil
}

func (r *memorySettingsRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	delete(r.settings, userID)
	return nil
}

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestGetSettingsDefaults(t *testing.T) {
	uc := NewGetSettingsUseCase(newMemorySettingsRepository())

	output, err := uc.Execute(context.Background(), GetSettingsInput{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Settings.VATRate.Equal(entity.DefaultVATRate) {
		t.Errorf("expected default VAT, got %s", output.Settings.VATRate)
	}
	if output.Settings.Theme != entity.ThemeSystem {
		t.Errorf("expected system theme, got %s", output.Settings.Theme)
	}
}

func TestLoadOrDefaultPropagatesErrors(t *testing.T) {
	repo := newMemorySettingsRepository()
	repo.err = errors.New("database is down")

	_, err := LoadOrDefault(context.Background(), repo, uuid.New())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestUpdateSettings(t *testing.T) {
	repo := newMemorySettingsRepository()
	uc := NewUpdateSettingsUseCase(repo)
	userID := uuid.New()
	dark := entity.ThemeDark

	output, err := uc.Execute(context.Background(), UpdateSettingsInput{
		UserID:    userID,
		VATRate:   decPtr("0.13"),
		DailyGoal: decPtr("120"),
		Theme:     &dark,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Settings.VATRate.Equal(decimal.RequireFromString("0.13")) {
		t.Errorf("expected VAT 0.13, got %s", output.Settings.VATRate)
	}
	if !output.Settings.MonthlyContribution.Equal(entity.DefaultMonthlyContribution) {
		t.Errorf("expected contribution untouched, got %s", output.Settings.MonthlyContribution)
	}
	if output.Settings.EffectiveWeeklyGoal() == nil || !output.Settings.EffectiveWeeklyGoal().Equal(decimal.NewFromInt(840)) {
		t.Errorf("expected derived weekly goal 840, got %v", output.Settings.EffectiveWeeklyGoal())
	}

	output, err = uc.Execute(context.Background(), UpdateSettingsInput{
		UserID:     userID,
		ClearGoals: []GoalKind{GoalDaily},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Settings.DailyGoal != nil {
		t.Errorf("expected daily goal cleared, got %s", output.Settings.DailyGoal)
	}
	if output.Settings.Theme != entity.ThemeDark {
		t.Errorf("expected theme kept, got %s", output.Settings.Theme)
	}
}

func TestUpdateSettingsValidation(t *testing.T) {
	neon := entity.ThemePreference("neon")

	tests := []struct {
		name     string
		input    UpdateSettingsInput
		expected domainerror.SettingsErrorCode
	}{
		{name: "negative VAT", input: UpdateSettingsInput{VATRate: decPtr("-0.1")}, expected: domainerror.ErrCodeInvalidVATRate},
		{name: "VAT above one", input: UpdateSettingsInput{VATRate: decPtr("1.5")}, expected: domainerror.ErrCodeInvalidVATRate},
		{name: "negative contribution", input: UpdateSettingsInput{MonthlyContribution: decPtr("-1")}, expected: domainerror.ErrCodeInvalidContribution},
		{name: "zero goal", input: UpdateSettingsInput{MonthlyGoal: decPtr("0")}, expected: domainerror.ErrCodeInvalidGoalAmount},
		{name: "unknown goal", input: UpdateSettingsInput{ClearGoals: []GoalKind{"hourly"}}, expected: domainerror.ErrCodeInvalidSettings},
		{name: "bad theme", input: UpdateSettingsInput{Theme: &neon}, expected: domainerror.ErrCodeInvalidTheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUpdateSettingsUseCase(newMemorySettingsRepository())
			tt.input.UserID = uuid.New()

			_, err := uc.Execute(context.Background(), tt.input)

			var settingsErr *domainerror.SettingsError
			if !errors.As(err, &settingsErr) {
				t.Fatalf("expected SettingsError, got %v", err)
			}
			if settingsErr.Code != tt.expected {
				t.Errorf("expected code %s, got %s", tt.expected, settingsErr.Code)
			}
		})
	}
}
