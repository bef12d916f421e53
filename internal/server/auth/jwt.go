// Package auth implements the bearer-token codec: signed, time-limited JWTs
// carrying the authenticated user's id and email.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neverlost-dev/neverlost-api/internal/common"
)

// Claims includes the registered claims plus the two custom fields every
// token carries.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// GenerateToken signs an HS256 token for the given user valid for
// validityDuration from now.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and validity window and returns the
// decoded claims. Failures map onto the closed sentinel set: expired tokens
// yield common.ErrTokenExpired, structurally broken ones
// common.ErrTokenMalformed, and everything else common.ErrTokenInvalid.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, common.ErrTokenMalformed
		default:
			return nil, common.ErrTokenInvalid
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}
