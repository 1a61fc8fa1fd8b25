package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"loftly/internal/domain"
)

type MessageHandler struct {
	svc domain.MessageService
	log *slog.Logger
}

func NewMessageHandler(svc domain.MessageService, log *slog.Logger) *MessageHandler {
	return &MessageHandler{
		svc: svc,
		log: log,
	}
}

func (h *MessageHandler) Index(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("message: list failed", "error", err)
		JSONError(w, http.StatusInternalServerError, "Failed to list messages")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: map[string]any{"messages": messages},
	})
}

func (h *MessageHandler) Show(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	msg, err := h.svc.GetByID(r.Context(), messageID)
	if err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			JSONError(w, http.StatusNotFound, "Message not found")
			return
		}

		h.log.Error("message: get failed", "error", err, "message_id", messageID)
		JSONError(w, http.StatusInternalServerError, "Failed to get message")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: msg})
}

func (h *MessageHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.MessageSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	msg, err := h.svc.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRentalNotFound):
			JSONError(w, http.StatusNotFound, "Rental not found")
		case errors.Is(err, domain.ErrUserNotFound):
			JSONError(w, http.StatusNotFound, "User not found")
		default:
			h.log.Error("message: create failed", "error", err)
			JSONError(w, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "Message sent with success",
		Data:    msg,
	})
}

func (h *MessageHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	messageID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	if err := h.svc.Delete(r.Context(), messageID); err != nil {
		switch {
		case errors.Is(err, domain.ErrMessageNotFound):
			JSONError(w, http.StatusNotFound, "Message not found")
		case errors.Is(err, domain.ErrForbidden):
			JSONError(w, http.StatusForbidden, "You don't have permission to delete this message")
		default:
			h.log.Error("message: delete failed", "error", err, "message_id", messageID)
			JSONError(w, http.StatusInternalServerError, "Failed to delete message")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "Message deleted successfully"})
}
