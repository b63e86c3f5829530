// Package email composes and sends transactional emails.
package email

import (
	"context"
	"log/slog"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
	"github.com/gigledger/backend/internal/integration/email/templates"
)

const passwordResetSubject = "Reset your GigLedger password"

// Service renders templates and hands them to an EmailSender. Sending is
// synchronous: the caller sees the delivery error.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
}

// NewService creates a new email service.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
	}
}

func (s *Service) SendPasswordResetEmail(ctx context.Context, input adapter.PasswordResetEmailInput) error {
	body, err := s.renderer.Render(templates.PasswordReset, templates.PasswordResetData{
		UserName:  input.UserName,
		ResetURL:  input.ResetURL,
		ExpiresIn: input.ExpiresIn,
	})
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeTemplateRender, "password reset email", err)
	}

	messageID, err := s.sender.Send(ctx, adapter.Email{
		To:      input.UserEmail,
		ToName:  input.UserName,
		Subject: passwordResetSubject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		slog.Warn("Password reset email not delivered", "user_id", input.UserID, "error", err)
		return err
	}

	slog.Debug("Password reset email delivered", "user_id", input.UserID, "message_id", messageID)
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
