package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/friendbook/internal/models"
	"github.com/desertthunder/friendbook/internal/shared"
)

// RemoteError is a non-2xx answer from the remote service, reduced to one readable message.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string { return e.Message }

// Unwrap lets callers match any remote rejection with [shared.ErrAuthFailed].
func (e *RemoteError) Unwrap() error { return shared.ErrAuthFailed }

// AuthService implements [Gateway] over an [APIService].
type AuthService struct {
	api *APIService
}

func NewAuthService(api *APIService) *AuthService {
	return &AuthService{api: api}
}

// Register POSTs to /auth/register.
func (s *AuthService) Register(ctx context.Context, email, password, name string) error {
	resp, err := s.api.PostJSON(ctx, "/auth/register", models.Registration{Email: email, Password: password, Name: name})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return remoteError(resp, "Register")
	}
	return nil
}

// Login POSTs to /auth/login and decodes the returned account as-is.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthenticatedUser, error) {
	resp, err := s.api.PostJSON(ctx, "/auth/login", models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, remoteError(resp, "Login")
	}

	var user models.AuthenticatedUser
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode login response: %v", shared.ErrAPIRequest, err)
	}
	return &user, nil
}

func remoteError(resp *APIResponse, action string) *RemoteError {
	return &RemoteError{
		StatusCode: resp.StatusCode,
		Message:    resp.Message(fmt.Sprintf("%s failed (%d)", action, resp.StatusCode)),
	}
}
