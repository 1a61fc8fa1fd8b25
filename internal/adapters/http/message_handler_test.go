package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"loftly/internal/domain"
)

type fakeMessageService struct {
	createErr error
	deleteErr error
}

func (s *fakeMessageService) List(context.Context) ([]*domain.Message, error) {
	return []*domain.Message{{ID: 1, RentalID: 1, UserID: 1, Message: "Hi"}}, nil
}

func (s *fakeMessageService) GetByID(_ context.Context, messageID int64) (*domain.Message, error) {
	if messageID == 1 {
		return &domain.Message{ID: 1, RentalID: 1, UserID: 1, Message: "Hi"}, nil
	}
	return nil, domain.ErrMessageNotFound
}

func (s *fakeMessageService) Create(_ context.Context, req domain.MessageSaveRequest) (*domain.Message, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Message{ID: 1, RentalID: req.RentalID, UserID: req.UserID, Message: req.Message}, nil
}

func (s *fakeMessageService) Delete(context.Context, int64) error {
	return s.deleteErr
}

func TestMessageHandler_Store(t *testing.T) {
	valid := `{"rental_id":1,"user_id":1,"message":"Is it available?"}`

	tests := []struct {
		name       string
		svc        *fakeMessageService
		body       string
		wantStatus int
	}{
		{"created", &fakeMessageService{}, valid, http.StatusCreated},
		{"unknown rental", &fakeMessageService{createErr: domain.ErrRentalNotFound}, valid, http.StatusNotFound},
		{"unknown user", &fakeMessageService{createErr: domain.ErrUserNotFound}, valid, http.StatusNotFound},
		{"missing message", &fakeMessageService{}, `{"rental_id":1,"user_id":1}`, http.StatusBadRequest},
		{"invalid body", &fakeMessageService{}, `{nope`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMessageHandler(tt.svc, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Store(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestMessageHandler_Destroy(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeMessageService
		id         string
		wantStatus int
	}{
		{"deleted", &fakeMessageService{}, "1", http.StatusOK},
		{"not sender", &fakeMessageService{deleteErr: domain.ErrForbidden}, "1", http.StatusForbidden},
		{"not found", &fakeMessageService{deleteErr: domain.ErrMessageNotFound}, "99", http.StatusNotFound},
		{"bad id", &fakeMessageService{}, "abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMessageHandler(tt.svc, testLogger())

			req := httptest.NewRequest(http.MethodDelete, "/api/messages/"+tt.id, nil)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()

			handler.Destroy(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
