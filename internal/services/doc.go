// Package services defines the [Gateway] interface for the friend book identity endpoints and implements it over HTTP.
//
// # Transport
//
// [APIService] sends one JSON POST per call. Each request gets a fresh X-Request-ID so server logs can be matched
// to client logs. An optional rate limit ([WithRateLimit]) delays requests; nothing is ever retried, a failed call
// is reported and the user decides whether to try again.
//
// # Auth Gateway
//
// [AuthService] implements [Gateway]:
//   - Register : POST /auth/register with {email, password, name}; any 2xx succeeds
//   - Login : POST /auth/login with {email, password}; a 2xx body is decoded into [models.AuthenticatedUser]
//
// # Error Handling
//
// Non-2xx answers become a [RemoteError] whose message is, in order of preference, the "message" field of a JSON
// body, the raw body text, or "<Action> failed (<status>)". RemoteError unwraps to [shared.ErrAuthFailed].
// Transport failures wrap [shared.ErrAPIRequest].
package services
