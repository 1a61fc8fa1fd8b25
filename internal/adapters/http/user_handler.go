package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"loftly/internal/domain"
)

type UserHandler struct {
	svc domain.UserService
	log *slog.Logger
}

func NewUserHandler(svc domain.UserService, log *slog.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.svc.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			JSONError(w, http.StatusNotFound, "User not found")
			return
		}

		h.log.Error("user: get failed", "error", err, "user_id", userID)
		JSONError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: user})
}
