package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/logger"
)

type LogoutUserCommand struct {
	UserID uint
}

type LogoutUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewLogoutUserUseCase(userRepo user.Repository, logger logger.Interface) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Execute clears the stored refresh token digest so the session cannot
// be refreshed again. Logging out an already logged-out user succeeds.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, cmd LogoutUserCommand) error {
	u, err := uc.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		uc.logger.Errorw("failed to load user for logout", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to load user: %w", err)
	}

	u.ClearRefreshToken()
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to clear refresh token", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	uc.logger.Infow("user logged out", "user_id", cmd.UserID)
	return nil
}
