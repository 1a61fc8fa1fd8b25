package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loftly/internal/domain"
)

type fakeAuthService struct {
	users map[string]*domain.User
}

func (s *fakeAuthService) Register(context.Context, domain.RegisterRequest) (*domain.AuthResponse, error) {
	return nil, nil
}

func (s *fakeAuthService) Login(context.Context, domain.LoginRequest) (*domain.AuthResponse, error) {
	return nil, nil
}

func (s *fakeAuthService) Authenticate(_ context.Context, token string) (*domain.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, domain.ErrUnauthorized
}

func TestAuth(t *testing.T) {
	alice := &domain.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	svc := &fakeAuthService{users: map[string]*domain.User{"valid-token": alice}}

	var gotUser *domain.User
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = domain.UserFromContext(r.Context())
	}))

	tests := []struct {
		name       string
		decorate   func(r *http.Request)
		wantStatus int
		wantUser   bool
	}{
		{
			name: "bearer header",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer valid-token")
			},
			wantStatus: http.StatusOK,
			wantUser:   true,
		},
		{
			name: "cookie fallback",
			decorate: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "access_token", Value: "valid-token"})
			},
			wantStatus: http.StatusOK,
			wantUser:   true,
		},
		{
			name: "header wins over cookie",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer valid-token")
				r.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
			},
			wantStatus: http.StatusOK,
			wantUser:   true,
		},
		{
			name:       "no token",
			decorate:   func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "invalid token",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer garbage")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed authorization header",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "valid-token")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = nil

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			tt.decorate(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser {
				require.NotNil(t, gotUser)
				assert.Equal(t, "alice@example.com", gotUser.Email)
			} else {
				assert.Nil(t, gotUser)
			}
		})
	}
}
