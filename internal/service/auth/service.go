package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/auth"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	jwtService    jwt.Service
	adminUsername string
	passwordHash  []byte
}

func NewAuthService(jwtService jwt.Service, adminUsername string, adminPasswordHash string) auth.AuthService {
	return &AuthServiceImpl{
		jwtService:    jwtService,
		adminUsername: adminUsername,
		passwordHash:  []byte(adminPasswordHash),
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.adminUsername)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		slog.Warn("Failed login attempt", "username", req.Username)
		return auth.AccessTokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            jwt.TokenTypeAccess,
	}, nil
}

// IssueAgentToken implements auth.AuthService.
func (s *AuthServiceImpl) IssueAgentToken(ctx context.Context, req auth.AgentTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	token, expiresAt, err := s.jwtService.GenerateAgentToken(req.AgentName)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate agent token: %w", err)
	}

	slog.Info("Agent token issued", "agent_name", req.AgentName)
	return auth.AccessTokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            jwt.TokenTypeAgent,
	}, nil
}
