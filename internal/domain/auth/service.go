package auth

import (
	"context"
)

type AuthService interface {
	// Login checks the operator credentials and issues an access token.
	Login(ctx context.Context, req LoginRequest) (AccessTokenResponse, error)
	// IssueAgentToken mints a token a monitoring agent uses to write logs.
	IssueAgentToken(ctx context.Context, req AgentTokenRequest) (AccessTokenResponse, error)
}
