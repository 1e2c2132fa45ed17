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

type RegisterUserCommand struct {
	Email    string
	Name     string
	Password string
}

type RegisterUserResult struct {
	User   *user.User
	Tokens *TokenPair
}

// RegisterUserUseCase creates a user account and logs it in immediately.
type RegisterUserUseCase struct {
	userRepo     user.Repository
	hasher       PasswordHasher
	tokenService TokenService
	digester     TokenDigester
	logger       logger.Interface
}

func NewRegisterUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokenService TokenService,
	digester TokenDigester,
	logger logger.Interface,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		digester:     digester,
		logger:       logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	email, err := uservo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid email", err.Error())
	}
	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	passwordHash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, apperrors.NewInternalError("failed to register user")
	}

	newUser, err := user.NewUser(email, cmd.Name, passwordHash, authorization.RoleUser)
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
		uc.logger.Errorw("failed to reload created user", "error", err)
		return nil, fmt.Errorf("failed to load created user: %w", err)
	}

	tokens, err := uc.issueAndStore(ctx, created)
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", created.ID(), "email", email.String())
	return &RegisterUserResult{User: created, Tokens: tokens}, nil
}

func (uc *RegisterUserUseCase) issueAndStore(ctx context.Context, u *user.User) (*TokenPair, error) {
	tokens, err := uc.tokenService.IssueTokens(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_id", u.ID())
		return nil, apperrors.NewInternalError("failed to issue tokens")
	}

	u.RotateRefreshToken(uc.digester.Digest(tokens.RefreshToken))
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to store refresh token", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return tokens, nil
}
