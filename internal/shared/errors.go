package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// API and service errors
	ErrAPIRequest = fmt.Errorf("API request failed")

	// Storage errors
	ErrStorage        = fmt.Errorf("storage operation failed")
	ErrUnknownBackend = fmt.Errorf("unknown storage backend")

	// Navigation errors
	ErrRouteNotFound = fmt.Errorf("route not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
