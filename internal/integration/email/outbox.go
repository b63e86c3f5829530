package email

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/gigledger/backend/internal/application/adapter"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// Outbox is the sender used when no provider is configured. It keeps every
// email in memory and logs the recipient.
type Outbox struct {
	mu       sync.Mutex
	sent     []adapter.Email
	failWith error
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(_ context.Context, email adapter.Email) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.failWith != nil {
		return "", domainerror.NewEmailError(domainerror.ErrCodeEmailUnavailable, "outbox failure", o.failWith)
	}

	o.sent = append(o.sent, email)
	id := "outbox-" + strconv.Itoa(len(o.sent))
	slog.Info("Email kept in outbox", "to", email.To, "subject", email.Subject, "message_id", id)
	return id, nil
}

// Sent returns a copy of every email kept so far.
func (o *Outbox) Sent() []adapter.Email {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]adapter.Email(nil), o.sent...)
}

// FailWith makes every following Send fail with err. A nil err clears it.
func (o *Outbox) FailWith(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.failWith = err
}

var _ adapter.EmailSender = (*Outbox)(nil)
