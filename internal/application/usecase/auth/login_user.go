package auth

import (
	"context"

	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/domain/entity"
	domainerror "github.com/gigledger/backend/internal/domain/error"
)

// LoginUserInput represents the input for password login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase signs a driver in with email and password.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute checks the password and opens a session. Unknown emails and wrong
// passwords fail the same way.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*Session, error) {
	user, err := uc.userRepo.FindByEmail(ctx, entity.NormalizeEmail(input.Email))
	if err != nil {
		return nil, domainerror.InvalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.InvalidCredentials()
	}

	return openSession(ctx, uc.tokenService, user, input.RememberMe)
}
