package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/okunev/chatlite/internal/common"
	"github.com/okunev/chatlite/internal/server/auth"
	sc "github.com/okunev/chatlite/internal/server/config"
)

// SessionService mints and verifies the tokens that bind a claimed
// (device, username) identity to write requests and feed subscriptions.
// There is no password step; the token only carries the claim forward.
type SessionService struct {
	secret   []byte
	validity time.Duration
}

func NewSessionService(cfg *sc.Config) *SessionService {
	return &SessionService{
		secret:   []byte(cfg.SecretKey),
		validity: cfg.SessionTokenValidityDuration,
	}
}

func (s *SessionService) Open(deviceID, username string) (string, error) {
	if strings.TrimSpace(deviceID) == "" {
		return "", fmt.Errorf("%w: device id is required", common.ErrValidation)
	}
	if strings.TrimSpace(username) == "" {
		return "", fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	token, err := auth.GenerateToken(deviceID, username, s.secret, s.validity)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

func (s *SessionService) Verify(token string) (*auth.Identity, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	identity, err := auth.GetIdentityFromToken(token, s.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	return identity, nil
}
