// Package auth implements the credential codec: issuing and verifying
// signed identity tokens that carry a user's public profile and a
// token-kind discriminator (access vs refresh).
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/server/models"
)

// Token kinds embedded in the Kind claim. The values double as cookie
// names on the login response.
const (
	TokenKindAccess  = "access_token"
	TokenKindRefresh = "refresh_token"
)

// Claims is the signed token payload: standard registered claims plus the
// kind discriminator and the owning user's public projection.
type Claims struct {
	jwt.RegisteredClaims
	Kind string            `json:"kind"`
	User models.PublicUser `json:"user"`
}

// GenerateToken signs an HS256 token of the given kind for user, valid for
// validityDuration from now.
func GenerateToken(kind string, user *models.PublicUser, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Kind: kind,
		User: *user,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns
// its claims. Expired tokens yield common.ErrTokenExpired; any other
// verification failure yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
