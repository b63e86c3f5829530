package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/email/templates"
)

func newTestService(t *testing.T) (*Service, *Outbox) {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	sender := NewOutbox()
	return NewService(sender, renderer), sender
}

func TestSendPasswordResetEmail(t *testing.T) {
	service, sender := newTestService(t)

	err := service.SendPasswordResetEmail(context.Background(), adapter.PasswordResetEmailInput{
		UserID:    "user-1",
		UserEmail: "driver@example.com",
		UserName:  "Nikos",
		ResetURL:  "https://app.example.com/reset-password?token=abc",
		ExpiresIn: "1 hour",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	email := sent[0]
	if email.To != "driver@example.com" {
		t.Errorf("expected recipient driver@example.com, got %s", email.To)
	}
	if email.Subject != passwordResetSubject {
		t.Errorf("expected subject %q, got %q", passwordResetSubject, email.Subject)
	}
	if !strings.Contains(email.Text, "https://app.example.com/reset-password?token=abc") {
		t.Errorf("expected text body to contain reset URL, got %q", email.Text)
	}
	if !strings.Contains(email.HTML, "Hi Nikos") {
		t.Errorf("expected HTML body to greet the user")
	}
	if !strings.Contains(email.HTML, "1 hour") {
		t.Errorf("expected HTML body to mention expiry")
	}
}

func TestSendPasswordResetEmailFailure(t *testing.T) {
	service, sender := newTestService(t)
	sender.FailWith(errors.New("503 service unavailable"))

	err := service.SendPasswordResetEmail(context.Background(), adapter.PasswordResetEmailInput{
		UserEmail: "driver@example.com",
		ResetURL:  "https://app.example.com/reset-password?token=abc",
		ExpiresIn: "1 hour",
	})

	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) {
		t.Fatalf("expected EmailError, got %v", err)
	}
	if emailErr.Code != domainerror.ErrCodeEmailUnavailable {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmailUnavailable, emailErr.Code)
	}
	if !emailErr.Retryable() {
		t.Errorf("expected an unavailable provider to be retryable")
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{err: nil, expected: false},
		{err: errors.New("401 unauthorized"), expected: true},
		{err: errors.New("422: The `to` field is invalid"), expected: true},
		{err: errors.New("429 too many requests"), expected: false},
		{err: errors.New("500 internal server error"), expected: false},
	}

	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.expected {
			t.Errorf("expected %v for %v, got %v", tt.expected, tt.err, got)
		}
		if tt.err == nil {
			continue
		}
		if retryable := classifyResendError(tt.err).Retryable(); retryable == tt.expected {
			t.Errorf("expected retryable=%v for %v", !tt.expected, tt.err)
		}
	}
}

func TestFormatAddress(t *testing.T) {
	if got := formatAddress("", "a@b.co"); got != "a@b.co" {
		t.Errorf("expected bare address, got %s", got)
	}
	if got := formatAddress("GigLedger", "a@b.co"); got != "GigLedger <a@b.co>" {
		t.Errorf("expected named address, got %s", got)
	}
}
