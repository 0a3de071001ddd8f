package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vlog/internal/httputil"
	"vlog/internal/model"
	"vlog/internal/service"
	"vlog/internal/transport/http/middleware"
)

// AuthHandler groups auth-related HTTP endpoints and their dependencies.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameRequired), errors.Is(err, model.ErrPasswordRequired):
			httputil.WriteBadRequest(w, "Username and password required")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "User already exists")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Register handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to register user")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered",
		"user":    user.Summary(),
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Invalid credentials")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Login handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to log in")
		}
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		log.Printf("[ERROR] Login handler: issue token: err=%v", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.AuthResponse{
		Token: token,
		User: model.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}

// Verify handles GET /api/auth/verify
// Confirms the presented token still maps to an existing account.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	user, err := h.userService.GetByID(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteUnauthorized(w, "User not found")
			return
		}
		if errors.Is(err, model.ErrStoreUnavailable) {
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
			return
		}
		log.Printf("[ERROR] Verify handler: user=%d err=%v", principal.UserID, err)
		httputil.WriteInternalError(w, "Failed to verify token")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.VerifyResponse{
		Valid: true,
		User: model.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}
