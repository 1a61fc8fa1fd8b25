package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"loftly/internal/domain"
)

// maxUploadSize bounds the multipart form, pictures included.
const maxUploadSize = 10 << 20

type RentalHandler struct {
	svc domain.RentalService
	log *slog.Logger
}

func NewRentalHandler(svc domain.RentalService, log *slog.Logger) *RentalHandler {
	return &RentalHandler{
		svc: svc,
		log: log,
	}
}

func (h *RentalHandler) Index(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("rental: list failed", "error", err)
		JSONError(w, http.StatusInternalServerError, "Failed to list rentals")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Data: map[string]any{"rentals": rentals},
	})
}

func (h *RentalHandler) Show(w http.ResponseWriter, r *http.Request) {
	rentalID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid rental id")
		return
	}

	rental, err := h.svc.GetByID(r.Context(), rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrRentalNotFound) {
			JSONError(w, http.StatusNotFound, "Rental not found")
			return
		}

		h.log.Error("rental: get failed", "error", err, "rental_id", rentalID)
		JSONError(w, http.StatusInternalServerError, "Failed to get rental")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: rental})
}

func (h *RentalHandler) Store(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	picture, ok := h.parsePicture(w, r, true)
	if !ok {
		return
	}
	if picture != nil {
		if closer, ok := picture.File.(io.Closer); ok {
			defer closer.Close()
		}
	}

	rental, err := h.svc.Create(r.Context(), req, picture)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPictureRequired):
			JSONError(w, http.StatusBadRequest, "Picture is required")
		default:
			h.log.Error("rental: create failed", "error", err)
			JSONError(w, http.StatusInternalServerError, "Failed to create rental")
		}
		return
	}

	JSONSuccess(w, http.StatusCreated, APIResponse{
		Message: "Rental created successfully",
		Data:    rental,
	})
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	rentalID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid rental id")
		return
	}

	req, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	// Picture is optional on update, the current one is kept.
	picture, ok := h.parsePicture(w, r, false)
	if !ok {
		return
	}
	if picture != nil {
		if closer, ok := picture.File.(io.Closer); ok {
			defer closer.Close()
		}
	}

	if err := h.svc.Update(r.Context(), req, picture, rentalID); err != nil {
		switch {
		case errors.Is(err, domain.ErrRentalNotFound):
			JSONError(w, http.StatusNotFound, "Rental not found")
		case errors.Is(err, domain.ErrForbidden):
			JSONError(w, http.StatusForbidden, "You don't have permission to update this rental")
		default:
			h.log.Error("rental: update failed", "error", err, "rental_id", rentalID)
			JSONError(w, http.StatusInternalServerError, "Failed to update rental")
		}
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Message: "Rental updated successfully"})
}

func (h *RentalHandler) parseForm(w http.ResponseWriter, r *http.Request) (domain.RentalSaveRequest, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return domain.RentalSaveRequest{}, false
	}

	surface, _ := strconv.ParseFloat(r.FormValue("surface"), 64)
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	req := domain.RentalSaveRequest{
		Name:        r.FormValue("name"),
		Surface:     surface,
		Price:       price,
		Description: r.FormValue("description"),
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return domain.RentalSaveRequest{}, false
	}

	return req, true
}

func (h *RentalHandler) parsePicture(w http.ResponseWriter, r *http.Request, required bool) (*domain.Upload, bool) {
	file, header, err := r.FormFile("picture")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) && !required {
			return nil, true
		}
		JSONError(w, http.StatusBadRequest, "Picture is required")
		return nil, false
	}

	return &domain.Upload{
		File:     file,
		Filename: header.Filename,
	}, true
}
