package adapter

import "context"

// Email is one rendered message ready for delivery.
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// EmailSender hands rendered emails to a delivery provider and returns the
// provider's message id.
type EmailSender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// PasswordResetEmailInput is what the reset email needs to know about the driver.
type PasswordResetEmailInput struct {
	UserID    string
	UserEmail string
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// EmailService composes the transactional emails the app sends.
type EmailService interface {
	SendPasswordResetEmail(ctx context.Context, input PasswordResetEmailInput) error
}
