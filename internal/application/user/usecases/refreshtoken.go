package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	apperrors "github.com/munziralyafie/subscription-billing-api/internal/shared/errors"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	Tokens *TokenPair
}

// RefreshTokenUseCase rotates a refresh token: the presented token must
// match the stored digest, and using it invalidates it by replacing the
// digest with the new token's.
type RefreshTokenUseCase struct {
	userRepo     user.Repository
	tokenService TokenService
	digester     TokenDigester
	logger       logger.Interface
}

func NewRefreshTokenUseCase(
	userRepo user.Repository,
	tokenService TokenService,
	digester TokenDigester,
	logger logger.Interface,
) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
		digester:     digester,
		logger:       logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, apperrors.NewUnauthorizedError("refresh token required")
	}

	userID, _, err := uc.tokenService.ValidateRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid refresh token")
		}
		uc.logger.Errorw("failed to load user for refresh", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	stored := u.RefreshTokenHash()
	if stored == nil || !uc.digester.Matches(cmd.RefreshToken, *stored) {
		// A valid signature with a mismatched digest means the token was
		// already rotated or revoked.
		uc.logger.Warnw("refresh token reuse detected", "user_id", userID)
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}

	tokens, err := uc.tokenService.IssueTokens(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue tokens", "error", err, "user_id", u.ID())
		return nil, apperrors.NewInternalError("failed to issue tokens")
	}

	u.RotateRefreshToken(uc.digester.Digest(tokens.RefreshToken))
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to rotate refresh token", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &RefreshTokenResult{Tokens: tokens}, nil
}
