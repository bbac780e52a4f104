package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestIdentityServer(t *testing.T, handler http.HandlerFunc) *IdentityClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewIdentityClient(srv.URL, time.Second)
}

func TestNewIdentityClient_BaseURL(t *testing.T) {
	assert.Equal(t, "http://identity:10001", NewIdentityClient("identity:10001", time.Second).baseURL)
	assert.Equal(t, "https://identity.example.com", NewIdentityClient("https://identity.example.com/", time.Second).baseURL)
}

func TestIdentityClient_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantUser   User
		wantErr    error
		authHeader string
	}{
		{
			name:       "known user",
			status:     http.StatusOK,
			body:       `{"user":{"id":42,"name":"ignored"}}`,
			wantUser:   User{ID: 42},
			authHeader: "Bearer good",
		},
		{
			name:       "rejected token",
			status:     http.StatusUnauthorized,
			body:       `{"error":"nope"}`,
			wantErr:    ErrInvalidCredentials,
			authHeader: "Bearer bad",
		},
		{
			name:       "unknown user",
			status:     http.StatusNotFound,
			wantErr:    ErrInvalidCredentials,
			authHeader: "Bearer gone",
		},
		{
			name:       "service failure",
			status:     http.StatusInternalServerError,
			wantErr:    ErrIdentityUnavailable,
			authHeader: "Bearer good",
		},
		{
			name:       "malformed body",
			status:     http.StatusOK,
			body:       `{"user":`,
			wantErr:    ErrIdentityUnavailable,
			authHeader: "Bearer good",
		},
		{
			name:       "body without user",
			status:     http.StatusOK,
			body:       `{}`,
			wantErr:    ErrIdentityUnavailable,
			authHeader: "Bearer good",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := createTestIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/user", r.URL.Path)
				assert.Equal(t, tt.authHeader, r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			user, err := client.Resolve(context.Background(), tt.authHeader)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestIdentityClient_Resolve_MissingHeader(t *testing.T) {
	called := false
	client := createTestIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.Resolve(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.False(t, called)
}

func TestIdentityClient_Resolve_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewIdentityClient(srv.URL, time.Second)
	srv.Close()

	_, err := client.Resolve(context.Background(), "Bearer good")
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

// ==========================
// Middleware
// ==========================

type resolverFunc func(ctx context.Context, authorization string) (User, error)

func (f resolverFunc) Resolve(ctx context.Context, authorization string) (User, error) {
	return f(ctx, authorization)
}

func TestMiddleware(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, authorization string) (User, error) {
		if authorization == "Bearer good" {
			return User{ID: 7}, nil
		}
		return User{}, ErrInvalidCredentials
	})

	var handled error
	onError := func(w http.ResponseWriter, _ *http.Request, err error) {
		handled = err
		w.WriteHeader(http.StatusUnauthorized)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(7), user.ID)
		w.WriteHeader(http.StatusTeapot)
	})

	h := Middleware(resolver, onError)(next)

	req := httptest.NewRequest(http.MethodGet, "/org", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NoError(t, handled)

	req = httptest.NewRequest(http.MethodGet, "/org", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, errors.Is(handled, ErrInvalidCredentials))
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}
