package auth

import "github.com/cmlabs-hris/activity-monitor-backend/internal/pkg/validator"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type AgentTokenRequest struct {
	AgentName string `json:"agent_name"`
}

func (r *AgentTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AgentName) {
		errs.Add("agent_name", "agent_name is required")
	} else if len(r.AgentName) > 100 {
		errs.Add("agent_name", "agent_name must not exceed 100 characters")
	}

	return errs.Err()
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	TokenType            string `json:"token_type"`
}
