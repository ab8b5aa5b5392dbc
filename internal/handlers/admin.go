package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/userdesk/apiserver/internal/auth"
	"github.com/userdesk/apiserver/internal/services"
	"github.com/userdesk/apiserver/internal/store"
)

// AdminHandler provides administrator-only user management endpoints.
type AdminHandler struct {
	userService *services.UserService
}

// NewAdminHandler constructs an AdminHandler with the provided dependencies.
func NewAdminHandler(userService *services.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// AdminRouter registers admin routes on the given router. Every route
// is guarded by the admin middleware.
func AdminRouter(r chi.Router, userService *services.UserService, tokenService *auth.TokenService) {
	handler := NewAdminHandler(userService)

	r.Use(RequireAdmin(tokenService, userService))
	r.Post("/register", handler.Register)
	r.Post("/change_password/{id}", handler.ChangePassword)
	r.Post("/reset_password/{id}", handler.ResetPassword)
	r.Get("/users", handler.ListUsers)
	r.Delete("/delete_user/{id}", handler.DeleteUser)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type UserSummary struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"last_login"`
}

// Register creates a new user account. The password policy applies
// here and only here; login never re-checks strength.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password, req.IsAdmin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordPolicy):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ChangePassword sets a new password on the target user.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
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

	if err := h.userService.SetPassword(r.Context(), id, req.NewPassword); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

// ResetPassword blanks the target user's password; the account cannot
// log in again until an administrator sets a real one.
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.ResetPassword(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to reset password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password reset successfully"})
}

// ListUsers returns every account with its last-login timestamp.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, UserSummary{
			ID:        user.ID,
			Username:  user.Username,
			LastLogin: user.LastLogin,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

// DeleteUser removes the target account.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}

func userIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
