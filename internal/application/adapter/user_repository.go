// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/domain/entity"
)

// UserRepository persists driver accounts and their credentials.
// Lookups by email expect the address in entity.NormalizeEmail form.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdatePassword replaces the password hash.
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdatePin stores a PIN hash. A nil hash turns PIN login off.
	UpdatePin(ctx context.Context, id uuid.UUID, pinHash *string) error

	// Delete removes the account along with every refresh and reset token
	// issued to it.
	Delete(ctx context.Context, id uuid.UUID) error
}
