package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess = "access"
	TokenTypeAgent  = "agent"
)

type Service interface {
	// GenerateAccessToken issues a dashboard operator token.
	GenerateAccessToken(username string) (token string, expiresAt int64, err error)
	// GenerateAgentToken issues a long-lived token for a monitoring agent
	// that writes idle logs and auto-breaks.
	GenerateAgentToken(agentName string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	agentTokenExpirationTime  string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, agentTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		agentTokenExpirationTime:  agentTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(username string) (token string, expiresAt int64, err error) {
	return j.generate(username, TokenTypeAccess, j.accessTokenExpirationTime)
}

func (j *JWTService) GenerateAgentToken(agentName string) (token string, expiresAt int64, err error) {
	return j.generate(agentName, TokenTypeAgent, j.agentTokenExpirationTime)
}

func (j *JWTService) generate(subject, tokenType, expiration string) (string, int64, error) {
	expDuration, err := time.ParseDuration(expiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": tokenType,
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}
