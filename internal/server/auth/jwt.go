// Package auth issues and verifies the bearer session tokens that bind an
// authenticated account to vault operations.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Principal is the strongly typed identity of an authenticated caller.
// Only a successful VerifyToken produces one; handlers must never construct
// a Principal from raw request data.
type Principal struct {
	AccountID string
}

// GenerateToken signs an HS256 token whose subject is accountID, valid for
// the given duration.
func GenerateToken(accountID string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
	})
	return token.SignedString(secretKey)
}

// VerifyToken parses and validates tokenString. Expired tokens surface as
// common.ErrTokenExpired; every other failure collapses to
// common.ErrTokenInvalid.
func VerifyToken(tokenString string, secretKey []byte) (Principal, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, common.ErrTokenExpired
		}
		return Principal{}, common.ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return Principal{}, common.ErrTokenInvalid
	}

	return Principal{AccountID: claims.Subject}, nil
}
