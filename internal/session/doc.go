// Package session implements the client-side session store: the one place that knows who is logged in.
//
// A [Store] holds an optional [models.AuthenticatedUser] and mirrors it to a [storage.Bridge] under [Key].
// Mutations write storage first and only then update memory, so a failed write never leaves the two apart.
//
// # Lifecycle
//
// Build the store with [NewStore] and call [Store.Initialize] once before use.
// Initialize never fails: a missing, unreadable or malformed mirror simply means nobody is logged in.
//
// # Observing changes
//
// [Store.Subscribe] registers a [Listener] that is called synchronously, in registration order,
// after every committed change. Readers such as the navigation guard call [Store.IsLoggedIn] instead.
package session
