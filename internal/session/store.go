// package session holds the authenticated user and mirrors it to durable storage
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/friendbook/internal/models"
	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/storage"
)

// Key is the durable-storage key holding the serialized [models.AuthenticatedUser].
const Key = "auth_user"

// Listener receives the committed user after every change; nil means logged out.
type Listener func(user *models.AuthenticatedUser)

// Store is the single holder of the current [models.AuthenticatedUser].
//
// The in-memory value and the value under [Key] agree once any method returns.
type Store struct {
	bridge storage.Bridge
	logger *log.Logger

	writeMu sync.Mutex // serializes mutations and their notifications
	mu      sync.RWMutex
	user    *models.AuthenticatedUser

	subMu     sync.Mutex
	nextSubID int
	listeners map[int]Listener
}

// NewStore returns an empty store backed by bridge. Call [Store.Initialize] before first use.
func NewStore(bridge storage.Bridge, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		bridge:    bridge,
		logger:    shared.WithLogger(logger, "component", "session"),
		listeners: make(map[int]Listener),
	}
}

// Initialize loads the mirrored user. A missing, unreadable or malformed mirror leaves the store logged out.
func (s *Store) Initialize(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	user := s.load(ctx)

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.notify(user)
}

func (s *Store) load(ctx context.Context) *models.AuthenticatedUser {
	raw, found, err := s.bridge.Get(ctx, Key)
	if err != nil {
		s.logger.Warn("could not read session mirror, starting logged out", "error", err)
		return nil
	}
	if !found {
		return nil
	}

	user, ok := decodeUser(raw)
	if !ok {
		s.logger.Warn("discarding malformed session mirror", "key", Key)
		return nil
	}
	return user
}

// SetUser replaces the current user and persists it.
//
// On a storage error the previous user is kept.
func (s *Store) SetUser(ctx context.Context, user models.AuthenticatedUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.bridge.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	u := user
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	s.logger.Debug("session started", "user_id", user.ID)
	s.notify(&u)
	return nil
}

// Logout clears the current user and removes [Key] from storage.
func (s *Store) Logout(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.bridge.Remove(ctx, Key); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.logger.Debug("session ended")
	s.notify(nil)
	return nil
}

// IsLoggedIn reports whether a user is set.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns a copy of the current user.
func (s *Store) User() (models.AuthenticatedUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.AuthenticatedUser{}, false
	}
	return *s.user, true
}

// Subscribe registers fn for future changes and returns a function that removes it.
//
// Listeners run synchronously on the mutating goroutine and may call [Store.User] or [Store.IsLoggedIn],
// but must not mutate the store.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

// notify hands each listener its own copy of user.
func (s *Store) notify(user *models.AuthenticatedUser) {
	s.subMu.Lock()
	ids := slices.Sorted(maps.Keys(s.listeners))
	fns := make([]Listener, len(ids))
	for i, id := range ids {
		fns[i] = s.listeners[id]
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		if user == nil {
			fn(nil)
			continue
		}
		u := *user
		fn(&u)
	}
}

// wireUser keeps id raw and the strings as pointers so absent keys can be told apart from zero values.
type wireUser struct {
	ID    json.RawMessage `json:"id"`
	Email *string         `json:"email"`
	Name  *string         `json:"name"`
}

// decodeUser accepts only a JSON object carrying a whole-number id and string email and name.
func decodeUser(raw string) (*models.AuthenticatedUser, bool) {
	w := shared.ParseOrDefault[*wireUser](raw, nil)
	if w == nil || w.Email == nil || w.Name == nil {
		return nil, false
	}
	id, ok := shared.ParseWholeNumber(w.ID)
	if !ok {
		return nil, false
	}
	return &models.AuthenticatedUser{ID: id, Email: *w.Email, Name: *w.Name}, true
}
