package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/userdesk/apiserver/internal/auth"
	"github.com/userdesk/apiserver/internal/services"
)

// AuthHandler provides login and self-service account endpoints.
type AuthHandler struct {
	userService  *services.UserService
	tokenService *auth.TokenService
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, tokenService *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, tokenService *auth.TokenService) {
	handler := NewAuthHandler(userService, tokenService)

	r.Post("/login", handler.Login)
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokenService, userService))
		r.Post("/change_password", handler.ChangePassword)
		r.Get("/last_login", handler.LastLogin)
		r.Get("/user-info", handler.UserInfo)
		r.Post("/logout", handler.Logout)
	})
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type UserInfoResponse struct {
	Username  string     `json:"username"`
	IsAdmin   bool       `json:"is_admin"`
	LastLogin *time.Time `json:"last_login"`
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountInsecure):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to authenticate")
		}
		return
	}

	token, err := h.tokenService.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{UserID: user.ID, Token: token})
}

// ChangePassword updates the acting user's own password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new password is required")
		return
	}

	if err := h.userService.SetPassword(r.Context(), user.ID, req.NewPassword); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// LastLogin returns the caller's most recent login timestamp.
func (h *AuthHandler) LastLogin(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, map[string]*time.Time{"last_login": user.LastLogin})
}

// UserInfo returns the caller's account details.
func (h *AuthHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	user, err := UserFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, UserInfoResponse{
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		LastLogin: user.LastLogin,
	})
}

// Logout acknowledges a client-side token discard. Tokens are
// stateless and are never revoked server-side before expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}
