// Package auth issues and verifies the HS256 session tokens that bind a
// claimed chat identity (device id + username) to subsequent requests.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/okunev/chatlite/internal/common"
)

// Claims carries the registered claims plus the chat identity the token
// was issued for.
type Claims struct {
	jwt.RegisteredClaims
	DeviceID string
	Username string
}

// Identity is the verified (device, username) pair extracted from a token.
type Identity struct {
	DeviceID string
	Username string
}

func GenerateToken(deviceID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		DeviceID: deviceID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetIdentityFromToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{DeviceID: claims.DeviceID, Username: claims.Username}, nil
}
