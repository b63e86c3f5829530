package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// ResendClient delivers email through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a Resend sender. baseURL overrides the API
// endpoint and may be empty.
func NewResendClient(apiKey, baseURL, fromName, fromEmail string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		endpoint, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = endpoint
	}

	return &ResendClient{
		client: client,
		from:   formatAddress(fromName, fromEmail),
	}, nil
}

func (c *ResendClient) Send(ctx context.Context, email adapter.Email) (string, error) {
	sent, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{formatAddress(email.ToName, email.To)},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return "", classifyResendError(err)
	}
	return sent.Id, nil
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// rejectionMarkers appear in Resend errors for requests that can never
// succeed as sent.
var rejectionMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

func classifyResendError(err error) *domainerror.EmailError {
	if isPermanentError(err) {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailRejected, "resend rejected the email", err)
	}
	return domainerror.NewEmailError(domainerror.ErrCodeEmailUnavailable, "resend unavailable", err)
}

func isPermanentError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rejectionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
