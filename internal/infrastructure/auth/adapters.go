package auth

import (
	"fmt"

	"github.com/munziralyafie/subscription-billing-api/internal/application/user/usecases"
	"github.com/munziralyafie/subscription-billing-api/internal/shared/authorization"
)

// TokenServiceAdapter exposes the JWT service through the application's
// token port.
type TokenServiceAdapter struct {
	jwt *JWTService
}

var _ usecases.TokenService = (*TokenServiceAdapter)(nil)

func NewTokenServiceAdapter(jwt *JWTService) *TokenServiceAdapter {
	return &TokenServiceAdapter{jwt: jwt}
}

func (a *TokenServiceAdapter) IssueTokens(userID uint, role authorization.UserRole) (*usecases.TokenPair, error) {
	pair, err := a.jwt.Generate(userID, role)
	if err != nil {
		return nil, err
	}
	return &usecases.TokenPair{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func (a *TokenServiceAdapter) ValidateRefresh(refreshToken string) (uint, authorization.UserRole, error) {
	claims, err := a.jwt.Verify(refreshToken)
	if err != nil {
		return 0, "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return 0, "", fmt.Errorf("token is not a refresh token")
	}
	return claims.UserID, claims.Role, nil
}

// SHA256TokenDigester stores refresh tokens as SHA-256 digests. Bcrypt
// is unsuitable here: JWT refresh tokens exceed its 72-byte input
// limit.
type SHA256TokenDigester struct{}

var _ usecases.TokenDigester = SHA256TokenDigester{}

func NewSHA256TokenDigester() SHA256TokenDigester {
	return SHA256TokenDigester{}
}

func (SHA256TokenDigester) Digest(token string) string {
	return HashToken(token)
}

func (SHA256TokenDigester) Matches(token, digest string) bool {
	return VerifyTokenHash(token, digest)
}
