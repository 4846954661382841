// package services talks to the remote friend book API
package services

import (
	"context"

	"github.com/desertthunder/friendbook/internal/models"
)

// Gateway performs the identity-establishing calls against the remote service.
//
// It never touches the session store; callers persist the returned user themselves.
type Gateway interface {
	// Register creates an account. The response body of a successful call is ignored.
	Register(ctx context.Context, email, password, name string) error

	// Login exchanges credentials for the account they belong to.
	Login(ctx context.Context, email, password string) (*models.AuthenticatedUser, error)
}
