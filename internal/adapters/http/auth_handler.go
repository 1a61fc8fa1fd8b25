package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"loftly/internal/config"
	"loftly/internal/domain"
)

type AuthHandler struct {
	svc domain.AuthService
	cfg *config.Config
	log *slog.Logger
}

func NewAuthHandler(svc domain.AuthService, cfg *config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		cfg: cfg,
		log: log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			JSONError(w, http.StatusConflict, "Email is already in use")
		case errors.Is(err, domain.ErrDuplicateName):
			JSONError(w, http.StatusConflict, "Name is already in use")
		default:
			h.log.Error("auth: register failed", "error", err)
			JSONError(w, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	h.setAccessCookie(w, res.AccessToken)

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "User registered successfully",
		Data: map[string]any{
			"user":  res.User,
			"token": res.AccessToken,
		},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			JSONError(w, http.StatusUnauthorized, "Incorrect email or password")
		case errors.Is(err, domain.ErrTooManyAttempts):
			JSONError(w, http.StatusTooManyRequests, "Too many login attempts, try again later")
		default:
			h.log.Error("auth: login failed", "error", err)
			JSONError(w, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	h.setAccessCookie(w, res.AccessToken)

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: map[string]any{
			"user":  res.User,
			"token": res.AccessToken,
		},
	})
}

// Logout clears the cookie. The token itself stays valid until its
// expiry since there is no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	JSONSuccess(w, http.StatusOK, APIResponse{})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := domain.UserFromContext(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: user})
}

func (h *AuthHandler) setAccessCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.JWTExpiry),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
