package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"loftly/internal/domain"
	"loftly/internal/token"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User, userID int64) error {
	for email, u := range r.users {
		if u.ID == userID {
			delete(r.users, email)
			user.ID = userID
			r.users[user.Email] = user
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeLimiter struct {
	allowed bool
	resets  int
}

func (l *fakeLimiter) Allow(context.Context, string) (bool, error) { return l.allowed, nil }
func (l *fakeLimiter) Reset(context.Context, string) error         { l.resets++; return nil }

func newTestService(repo domain.UserRepository, limiter LoginLimiter) *Service {
	return NewService(repo, token.NewService("test-secret", time.Hour), limiter)
}

func registerReq() domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
	}
}

func TestService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotZero(t, resp.User.ID)

	// The stored password must be a hash, never the plaintext.
	stored, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestService_Register_Duplicates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		req := registerReq()
		req.Name = "Someone Else"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("duplicate name", func(t *testing.T) {
		req := registerReq()
		req.Email = "other@example.com"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})
}

func TestService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{
			name: "valid credentials",
			req:  domain.LoginRequest{Email: "alice@example.com", Password: "password123"},
		},
		{
			name:    "wrong password",
			req:     domain.LoginRequest{Email: "alice@example.com", Password: "wrong-password"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown email",
			req:     domain.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.Equal(t, "alice@example.com", resp.User.Email)
		})
	}
}

func TestService_Login_Throttled(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeLimiter{allowed: false})

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrTooManyAttempts)
}

func TestService_Login_ResetsLimiterOnSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	limiter := &fakeLimiter{allowed: true}
	svc := newTestService(repo, limiter)

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, limiter.resets)
}

func TestService_Authenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, nil)

	resp, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		delete(repo.users, "alice@example.com")
		_, err := svc.Authenticate(context.Background(), resp.AccessToken)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("repo failure propagates", func(t *testing.T) {
		boom := errors.New("db down")
		failing := &failingUserRepo{err: boom}
		svc := newTestService(failing, nil)

		tok, err := token.NewService("test-secret", time.Hour).Issue("alice@example.com")
		require.NoError(t, err)

		_, err = svc.Authenticate(context.Background(), tok)
		assert.ErrorIs(t, err, boom)
	})
}

type failingUserRepo struct {
	fakeUserRepo
	err error
}

func (r *failingUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, r.err
}
