package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type LoginUserCommand struct {
	Email    string
	Password string
}

type LoginUserResult struct {
	User   *user.User
	Tokens *TokenPair
}

type LoginUserUseCase struct {
	userRepo     user.Repository
	hasher       PasswordHasher
	tokenService TokenService
	digester     TokenDigester
	logger       logger.Interface
}

func NewLoginUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	tokenService TokenService,
	digester TokenDigester,
	logger logger.Interface,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		digester:     digester,
		logger:       logger,
	}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	u, err := uc.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same message as a wrong password so credentials cannot be
			// probed.
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to look up user", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "email", cmd.Email)
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

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

	uc.logger.Infow("user logged in", "user_id", u.ID())
	return &LoginUserResult{User: u, Tokens: tokens}, nil
}
