package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gigledger/backend/config"
	"github.com/gigledger/backend/internal/domain/entity"
)

var createdAt = time.Date(2024, time.March, 13, 18, 0, 0, 0, time.UTC)

func TestShiftDocumentRoundTrip(t *testing.T) {
	start := decimal.NewFromInt(12000)
	end := decimal.RequireFromString("12042.5")
	shift := entity.NewShift(uuid.New(), entity.ShiftInput{
		Date:          time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC),
		Hours:         5,
		Minutes:       30,
		GrossIncome:   decimal.RequireFromString("60.25"),
		Tips:          decimal.NewFromInt(5),
		Bonus:         decimal.RequireFromString("0.5"),
		OrdersCount:   8,
		OdometerStart: &start,
		OdometerEnd:   &end,
		Notes:         "rain",
	}, createdAt)

	got, err := shiftToDocument(shift).toEntity(shift.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != shift.ID || got.UserID != shift.UserID {
		t.Errorf("expected ids to survive, got %s/%s", got.ID, got.UserID)
	}
	if !got.NetIncome().Equal(decimal.RequireFromString("65.75")) {
		t.Errorf("expected net income 65.75, got %s", got.NetIncome())
	}
	if !got.Distance().Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("expected distance 42.5, got %s", got.Distance())
	}
	if got.Notes != "rain" {
		t.Errorf("expected notes to survive, got %q", got.Notes)
	}
	if !got.Date.Equal(shift.Date) {
		t.Errorf("expected date %v, got %v", shift.Date, got.Date)
	}
}

func TestExpenseDocumentRoundTrip(t *testing.T) {
	shiftID := uuid.New()
	expense := entity.NewExpense(uuid.New(), entity.ExpenseInput{
		Amount:        decimal.RequireFromString("45.9"),
		Category:      entity.ExpenseCategoryRoadTax,
		Date:          time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC),
		PaymentMethod: entity.PaymentMethodCard,
		ShiftID:       &shiftID,
	}, createdAt)

	doc := expenseToDocument(expense)
	if doc.Category != "road-tax" {
		t.Errorf("expected category road-tax, got %s", doc.Category)
	}

	got, err := doc.toEntity(expense.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Amount.Equal(expense.Amount) {
		t.Errorf("expected amount %s, got %s", expense.Amount, got.Amount)
	}
	if got.ShiftID == nil || *got.ShiftID != shiftID {
		t.Errorf("expected linked shift %s, got %v", shiftID, got.ShiftID)
	}
	if got.PaymentMethod != entity.PaymentMethodCard {
		t.Errorf("expected card payment, got %s", got.PaymentMethod)
	}
}

func TestDocumentRejectsMalformedIDs(t *testing.T) {
	doc := shiftDocument{UserID: "not-a-uuid"}
	if _, err := doc.toEntity(uuid.New().String()); err == nil {
		t.Errorf("expected error for malformed user id")
	}

	bad := "nope"
	expense := expenseDocument{UserID: uuid.New().String(), ShiftID: &bad}
	if _, err := expense.toEntity(uuid.New().String()); err == nil {
		t.Errorf("expected error for malformed shift id")
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound bool
		canceled bool
	}{
		{name: "not found", err: status.Error(codes.NotFound, "missing"), notFound: true},
		{name: "canceled", err: status.Error(codes.Canceled, "stop"), canceled: true},
		{name: "wrapped context", err: fmt.Errorf("listen: %w", context.Canceled), canceled: true},
		{name: "other", err: status.Error(codes.Internal, "boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFound(tt.err); got != tt.notFound {
				t.Errorf("expected notFound %v, got %v", tt.notFound, got)
			}
			if got := isCanceled(tt.err); got != tt.canceled {
				t.Errorf("expected canceled %v, got %v", tt.canceled, got)
			}
		})
	}
}

func TestNewClientRequiresProject(t *testing.T) {
	if _, err := NewClient(context.Background(), config.StorageConfig{}); err == nil {
		t.Errorf("expected error without project id")
	}
}
