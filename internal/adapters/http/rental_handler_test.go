package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loftly/internal/domain"
)

type fakeRentalService struct {
	rentals   map[int64]*domain.Rental
	createErr error
	updateErr error

	lastPicture *domain.Upload
}

func (s *fakeRentalService) List(context.Context) ([]*domain.Rental, error) {
	out := make([]*domain.Rental, 0, len(s.rentals))
	for _, rental := range s.rentals {
		out = append(out, rental)
	}
	return out, nil
}

func (s *fakeRentalService) GetByID(_ context.Context, rentalID int64) (*domain.Rental, error) {
	if rental, ok := s.rentals[rentalID]; ok {
		return rental, nil
	}
	return nil, domain.ErrRentalNotFound
}

func (s *fakeRentalService) Create(_ context.Context, req domain.RentalSaveRequest, picture *domain.Upload) (*domain.Rental, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.lastPicture = picture
	return &domain.Rental{ID: 1, Name: req.Name, Surface: req.Surface, Price: req.Price}, nil
}

func (s *fakeRentalService) Update(_ context.Context, _ domain.RentalSaveRequest, picture *domain.Upload, _ int64) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.lastPicture = picture
	return nil
}

type rentalForm struct {
	name, surface, price, description string
	picture                           string // filename, empty for none
}

func validRentalForm() rentalForm {
	return rentalForm{
		name:        "Seaside loft",
		surface:     "42",
		price:       "350",
		description: "Bright loft.",
		picture:     "loft.jpg",
	}
}

func (f rentalForm) request(t *testing.T, method, target string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", f.name))
	require.NoError(t, mw.WriteField("surface", f.surface))
	require.NoError(t, mw.WriteField("price", f.price))
	require.NoError(t, mw.WriteField("description", f.description))
	if f.picture != "" {
		part, err := mw.CreateFormFile("picture", f.picture)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRentalHandler_Index(t *testing.T) {
	svc := &fakeRentalService{rentals: map[int64]*domain.Rental{
		1: {ID: 1, Name: "Loft A"},
	}}
	handler := NewRentalHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/rentals", nil)
	rec := httptest.NewRecorder()

	handler.Index(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var res APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	data := res.Data.(map[string]any)
	assert.Len(t, data["rentals"], 1)
}

func TestRentalHandler_Show(t *testing.T) {
	svc := &fakeRentalService{rentals: map[int64]*domain.Rental{
		1: {ID: 1, Name: "Loft A"},
	}}
	handler := NewRentalHandler(svc, testLogger())

	tests := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"found", "1", http.StatusOK},
		{"not found", "99", http.StatusNotFound},
		{"bad id", "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/rentals/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()

			handler.Show(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRentalHandler_Store(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeRentalService{}
		handler := NewRentalHandler(svc, testLogger())

		req := validRentalForm().request(t, http.MethodPost, "/api/rentals")
		rec := httptest.NewRecorder()

		handler.Store(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.lastPicture)
		assert.Equal(t, "loft.jpg", svc.lastPicture.Filename)
	})

	t.Run("missing picture", func(t *testing.T) {
		handler := NewRentalHandler(&fakeRentalService{}, testLogger())

		form := validRentalForm()
		form.picture = ""
		req := form.request(t, http.MethodPost, "/api/rentals")
		rec := httptest.NewRecorder()

		handler.Store(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		handler := NewRentalHandler(&fakeRentalService{}, testLogger())

		form := validRentalForm()
		form.surface = "0"
		req := form.request(t, http.MethodPost, "/api/rentals")
		rec := httptest.NewRecorder()

		handler.Store(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var res APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Contains(t, res.Errors, "surface")
	})
}

func TestRentalHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeRentalService
		picture    string
		wantStatus int
	}{
		{"updated with new picture", &fakeRentalService{}, "new.jpg", http.StatusOK},
		{"updated without picture", &fakeRentalService{}, "", http.StatusOK},
		{"not owner", &fakeRentalService{updateErr: domain.ErrForbidden}, "", http.StatusForbidden},
		{"not found", &fakeRentalService{updateErr: domain.ErrRentalNotFound}, "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRentalHandler(tt.svc, testLogger())

			form := validRentalForm()
			form.picture = tt.picture
			req := form.request(t, http.MethodPut, "/api/rentals/1")
			req.SetPathValue("id", "1")
			rec := httptest.NewRecorder()

			handler.Update(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK && tt.picture == "" {
				assert.Nil(t, tt.svc.lastPicture)
			}
		})
	}
}
