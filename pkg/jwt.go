package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	entity "skillswap/internal/domain"
)

// GenerateSessionToken signs a session token for the account. The token rides
// in an HTTP-only cookie, so the TTL doubles as the cookie max age.
func GenerateSessionToken(accountID int64, secret []byte, ttl time.Duration) (string, error) {
	claims := &entity.SessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "skillswap",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateSessionToken(tokenString string, secret []byte) (*entity.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &entity.SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*entity.SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
