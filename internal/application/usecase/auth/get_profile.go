package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
)

// GetProfileInput represents the input for reading the current user.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput represents the current user.
type GetProfileOutput struct {
	User *entity.User
}

// GetProfileUseCase reads the authenticated user.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute loads the user.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetProfileOutput{
		User: user,
	}, nil
}
