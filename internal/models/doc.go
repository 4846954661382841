// Package models defines the payloads exchanged with the friend book API and held by the local stores.
//
//   - [AuthenticatedUser] : the logged-in account, mirrored to durable storage by the session store
//   - [Credentials] : login request body
//   - [Registration] : registration request body
//
// Favorite sets are plain []int64 and need no dedicated type.
package models
