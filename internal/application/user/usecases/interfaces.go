package usecases

import "github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenService issues and validates authentication tokens.
type TokenService interface {
	IssueTokens(userID uint, role authorization.UserRole) (*TokenPair, error)
	// ValidateRefresh checks a refresh token and returns the user it
	// belongs to.
	ValidateRefresh(refreshToken string) (uint, authorization.UserRole, error)
}

// TokenDigester produces storable digests of refresh tokens so the raw
// token never touches the database.
type TokenDigester interface {
	Digest(token string) string
	Matches(token, digest string) bool
}
