package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/domain/user"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"
)

type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, u *user.User) error
	FindByIDFunc    func(ctx context.Context, id uint) (*user.User, error)
	FindByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc      func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

// mockHasher is a transparent stand-in so tests can assert on the
// stored value without real bcrypt cost.
type mockHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(password, hash string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(password, hash)
	}
	if hash != "hashed:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type mockTokenService struct {
	IssueTokensFunc     func(userID uint, role authorization.UserRole) (*TokenPair, error)
	ValidateRefreshFunc func(refreshToken string) (uint, authorization.UserRole, error)

	issued int
}

func (m *mockTokenService) IssueTokens(userID uint, role authorization.UserRole) (*TokenPair, error) {
	if m.IssueTokensFunc != nil {
		return m.IssueTokensFunc(userID, role)
	}
	m.issued++
	return &TokenPair{
		AccessToken:  fmt.Sprintf("access-%d-%d", userID, m.issued),
		RefreshToken: fmt.Sprintf("refresh-%d-%d", userID, m.issued),
		ExpiresIn:    900,
	}, nil
}

func (m *mockTokenService) ValidateRefresh(refreshToken string) (uint, authorization.UserRole, error) {
	if m.ValidateRefreshFunc != nil {
		return m.ValidateRefreshFunc(refreshToken)
	}
	return 0, "", fmt.Errorf("invalid token")
}

// sha256Digester mirrors the production digest scheme so rotation tests
// exercise real digest comparisons.
type sha256Digester struct{}

func (sha256Digester) Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (d sha256Digester) Matches(token, digest string) bool {
	return d.Digest(token) == digest
}
