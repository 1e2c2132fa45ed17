// Package user holds the user aggregate. Persistence concerns live in
// the infrastructure layer; the aggregate only enforces its own rules.
package user

import (
	"fmt"
	"time"

	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"

	vo "github.com/munziralyafie/subscription-billing-api/internal/domain/user/valueobjects"
)

// User represents the user aggregate root.
type User struct {
	id               uint
	email            *vo.Email
	name             string
	passwordHash     string
	role             authorization.UserRole
	refreshTokenHash *string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewUser creates a new user aggregate. The password hash is produced by
// the infrastructure hasher before the aggregate is constructed.
func NewUser(email *vo.Email, name, passwordHash string, role authorization.UserRole) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := time.Now().UTC()
	return &User{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(
	id uint,
	email *vo.Email,
	name, passwordHash string,
	role authorization.UserRole,
	refreshTokenHash *string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:               id,
		email:            email,
		name:             name,
		passwordHash:     passwordHash,
		role:             role,
		refreshTokenHash: refreshTokenHash,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (u *User) ID() uint { return u.id }

func (u *User) Email() *vo.Email { return u.email }

func (u *User) Name() string { return u.name }

func (u *User) PasswordHash() string { return u.passwordHash }

func (u *User) Role() authorization.UserRole { return u.role }

func (u *User) RefreshTokenHash() *string { return u.refreshTokenHash }

func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) IsAdmin() bool { return u.role.IsAdmin() }

// RotateRefreshToken replaces the stored refresh token hash. Only one
// refresh token is valid per user at a time.
func (u *User) RotateRefreshToken(hash string) {
	u.refreshTokenHash = &hash
	u.updatedAt = time.Now().UTC()
}

// ClearRefreshToken invalidates the current refresh token on logout.
func (u *User) ClearRefreshToken() {
	u.refreshTokenHash = nil
	u.updatedAt = time.Now().UTC()
}

// ChangePassword replaces the stored password hash.
func (u *User) ChangePassword(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.updatedAt = time.Now().UTC()
	return nil
}
