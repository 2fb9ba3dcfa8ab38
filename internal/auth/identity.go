package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrInvalidCredentials is returned when the identity provider
	// rejects the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProviderUnavailable is returned when the identity provider
	// cannot be reached or answers with a server error.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// IdentityProvider verifies credentials. Credential storage, token refresh
// and password handling all live on the provider's side; this system only
// asks "are these credentials good".
type IdentityProvider interface {
	Verify(ctx context.Context, email, password string) error
}

// HTTPIdentityProvider talks to an external identity service over HTTP
// using the password grant.
type HTTPIdentityProvider struct {
	client *resty.Client
}

// NewHTTPIdentityProvider creates a provider client for the given base URL.
func NewHTTPIdentityProvider(baseURL string, timeout time.Duration) *HTTPIdentityProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &HTTPIdentityProvider{client: client}
}

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Verify checks the credentials against the provider.
func (p *HTTPIdentityProvider) Verify(ctx context.Context, email, password string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(passwordGrantRequest{Email: email, Password: password}).
		Post("/token")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		return nil
	case resp.StatusCode() >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode())
	default:
		return ErrInvalidCredentials
	}
}
