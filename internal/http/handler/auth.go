package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dayoung-lee/taskboard/internal/middleware"
	"github.com/dayoung-lee/taskboard/internal/service"
)

const maxAuthBodySize = 1 << 20 // 1 MB

// AuthHandler routes /api/v1/auth/* requests.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/auth/")
	path = strings.TrimRight(path, "/")

	switch path {
	case "register":
		h.requirePost(w, r, h.handleRegister)
	case "login":
		h.requirePost(w, r, h.handleLogin)
	case "logout":
		h.requirePost(w, r, h.handleLogout)
	case "me":
		h.handleMe(w, r)
	default:
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "endpoint not found")
	}
}

func (h *AuthHandler) requirePost(w http.ResponseWriter, r *http.Request, handler func(http.ResponseWriter, *http.Request)) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	handler(w, r)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	creds, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, creds)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	creds, err := h.svc.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, creds)
}

// Logout always succeeds; session teardown is the client's job.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	user, err := h.svc.Me(r.Context(), middleware.GetUserID(r))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		handleAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		WriteError(w, http.StatusBadRequest, "MISSING_FIELDS", "All fields are required")
	case errors.Is(err, service.ErrUsernameTaken):
		WriteError(w, http.StatusConflict, "USERNAME_EXISTS", "Username already exists")
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
	default:
		slog.Error("auth internal error", "error", err.Error())
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
