package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"loftly/internal/domain"
)

type AccountHandler struct {
	svc domain.AccountService
	log *slog.Logger
}

func NewAccountHandler(svc domain.AccountService, log *slog.Logger) *AccountHandler {
	return &AccountHandler{
		svc: svc,
		log: log,
	}
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.AccountProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	if err := h.svc.UpdateProfile(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			JSONError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, domain.ErrDuplicateEmail):
			JSONError(w, http.StatusConflict, "Email is already in use")
		case errors.Is(err, domain.ErrDuplicateName):
			JSONError(w, http.StatusConflict, "Name is already in use")
		default:
			h.log.Error("account: profile update failed", "error", err)
			JSONError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "Profile updated successfully"})
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.AccountPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	if err := h.svc.ChangePassword(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			JSONError(w, http.StatusUnauthorized, "unauthorized")
		case errors.Is(err, domain.ErrInvalidCurrentPassword):
			JSONError(w, http.StatusBadRequest, "Current password is incorrect")
		default:
			h.log.Error("account: password change failed", "error", err)
			JSONError(w, http.StatusInternalServerError, "Failed to change password")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "Password changed successfully"})
}
