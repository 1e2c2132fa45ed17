package mappers

import (
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	uservo "github.com/munziralyafie/subscription-billing-api/internal/domain/user/valueobjects"
	"github.com/munziralyafie/subscription-billing-api/internal/infrastructure/persistence/models"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"
)

// UserMapper handles conversion between the user aggregate and its
// persistence model.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) (*models.UserModel, error)
}

type userMapper struct{}

func NewUserMapper() UserMapper {
	return &userMapper{}
}

func (m *userMapper) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := uservo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid email in stored user %d: %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		email,
		model.Name,
		model.PasswordHash,
		authorization.ParseUserRole(model.Role),
		model.RefreshTokenHash,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *userMapper) ToModel(entity *user.User) (*models.UserModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.UserModel{
		ID:               entity.ID(),
		Email:            entity.Email().String(),
		Name:             entity.Name(),
		PasswordHash:     entity.PasswordHash(),
		Role:             entity.Role().String(),
		RefreshTokenHash: entity.RefreshTokenHash(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}
