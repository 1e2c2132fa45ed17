package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	uservo "github.com/munziralyafie/subscription-billing-api/internal/domain/user/valueobjects"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type CreateUserCommand struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// CreateUserUseCase is the admin path for creating accounts, including
// other admins. Unlike registration it issues no tokens.
type CreateUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo user.Repository, hasher PasswordHasher, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	email, err := uservo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid email", err.Error())
	}
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid role: %s", cmd.Role))
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to create user")
	}

	newUser, err := user.NewUser(email, cmd.Name, passwordHash, role)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("email already registered")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := uc.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load created user: %w", err)
	}

	uc.logger.Infow("user created", "user_id", created.ID(), "role", role.String())
	return created, nil
}
