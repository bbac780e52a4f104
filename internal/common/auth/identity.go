// internal/common/auth/identity.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apphttp "inventory-service/internal/common/http"
	"inventory-service/internal/common/metrics"
)

var (
	ErrMissingCredentials  = errors.New("MISSING_CREDENTIALS")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrIdentityUnavailable = errors.New("IDENTITY_SERVICE_UNAVAILABLE")
)

// User is the caller as known to the identity service.
type User struct {
	ID int64 `json:"id"`
}

type Resolver interface {
	Resolve(ctx context.Context, authorization string) (User, error)
}

// IdentityClient resolves Authorization headers against the identity service.
type IdentityClient struct {
	baseURL string
	client  *apphttp.Client
}

func NewIdentityClient(serviceDomain string, timeout time.Duration) *IdentityClient {
	base := strings.TrimSuffix(serviceDomain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &IdentityClient{
		baseURL: base,
		client:  apphttp.NewClient(timeout),
	}
}

type userResponse struct {
	User *User `json:"user"`
}

// Resolve forwards authorization to GET /user and returns the user it names.
func (c *IdentityClient) Resolve(ctx context.Context, authorization string) (User, error) {
	if strings.TrimSpace(authorization) == "" {
		return User{}, ErrMissingCredentials
	}

	header := http.Header{}
	header.Set("Authorization", authorization)

	var body userResponse
	status, err := c.client.GetJSON(ctx, c.baseURL+"/user", header, &body)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}

	switch {
	case status == http.StatusOK:
	case status == http.StatusUnauthorized, status == http.StatusForbidden, status == http.StatusNotFound:
		return User{}, ErrInvalidCredentials
	default:
		return User{}, fmt.Errorf("%w: status %d", ErrIdentityUnavailable, status)
	}

	if body.User == nil || body.User.ID <= 0 {
		return User{}, fmt.Errorf("%w: response carries no user", ErrIdentityUnavailable)
	}
	return *body.User, nil
}

type contextKey struct{}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(contextKey{}).(User)
	return user, ok
}

// Middleware resolves the caller of every request and hands failures to onError.
func Middleware(resolver Resolver, onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				metrics.IdentityLookups.WithLabelValues(outcome(err)).Inc()
				onError(w, r, err)
				return
			}
			metrics.IdentityLookups.WithLabelValues("ok").Inc()
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "missing"
	case errors.Is(err, ErrInvalidCredentials):
		return "rejected"
	default:
		return "unavailable"
	}
}
