package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/auth"
	"github.com/cmlabs-hris/activity-monitor-backend/internal/handler/http/response"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	IssueAgentToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Operator logged in", "username", loginReq.Username)
	response.Created(w, "Logged in successfully", tokenResponse)
}

// IssueAgentToken implements AuthHandler.
func (a *AuthHandlerImpl) IssueAgentToken(w http.ResponseWriter, r *http.Request) {
	var req auth.AgentTokenRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("IssueAgentToken decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.IssueAgentToken(r.Context(), req)
	if err != nil {
		slog.Error("IssueAgentToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Agent token issued", "agent", req.AgentName)
	response.Created(w, "Agent token issued", tokenResponse)
}
