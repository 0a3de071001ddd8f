package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vlog/internal/config"
	"vlog/internal/model"
)

// AuthService issues access tokens. Verification happens in the auth
// middleware; whatever a valid token claims is trusted verbatim.
type AuthService struct {
	secret string
	maxAge int
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secret: cfg.JWTSecret,
		maxAge: cfg.TokenMaxAge,
	}
}

// IssueToken signs an HS256 token carrying the user's identity and role.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(time.Duration(s.maxAge) * time.Second).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
