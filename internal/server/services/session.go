// Package services contains server-side business logic. This file implements
// SessionService, which issues and verifies the signed session tokens carried
// in the session cookie.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/MethuParoi/share-bites-server-codebase/internal/common"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/auth"
	"github.com/MethuParoi/share-bites-server-codebase/internal/server/config"
)

// SessionService mints and checks session tokens. It holds no state besides
// the signing secret and the token validity window.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService constructs a SessionService from server config.
func NewSessionService(cfg *config.Config) *SessionService {
	return &SessionService{
		secret: []byte(cfg.SecretKey),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// TTL is the validity window of issued tokens.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for email. The email is trusted as supplied.
func (s *SessionService) Issue(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", common.ErrInvalidRequest)
	}

	token, err := auth.GenerateToken(email, s.secret, s.ttl, s.now())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Verify checks the token signature and expiry and returns its claims.
func (s *SessionService) Verify(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, common.ErrMissingToken
	}
	return auth.ParseToken(token, s.secret)
}
