// package favorites keeps the per-user set of favorited entry ids in durable storage
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/storage"
)

const keyPrefix = "favorites_v1_user_"

// KeyForUser returns the storage key holding userID's favorites.
func KeyForUser(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// Store maps user ids to favorited entry ids. It knows nothing about accounts; any id is accepted.
type Store struct {
	bridge storage.Bridge
	logger *log.Logger
	mu     sync.Mutex // serializes toggles
}

func NewStore(bridge storage.Bridge, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{bridge: bridge, logger: shared.WithLogger(logger, "component", "favorites")}
}

// GetFavoriteIDs returns userID's favorites, or an empty slice when nothing usable is stored.
func (s *Store) GetFavoriteIDs(ctx context.Context, userID int64) []int64 {
	key := KeyForUser(userID)
	raw, found, err := s.bridge.Get(ctx, key)
	if err != nil {
		s.logger.Warn("could not read favorites", "key", key, "error", err)
		return []int64{}
	}
	if !found {
		return []int64{}
	}
	return s.parse(key, raw)
}

// ToggleFavoriteID removes one occurrence of entryID if present, appends it otherwise, and returns the new set.
//
// A failed read is returned without writing.
func (s *Store) ToggleFavoriteID(ctx context.Context, userID, entryID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := KeyForUser(userID)
	raw, found, err := s.bridge.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	ids := []int64{}
	if found {
		ids = s.parse(key, raw)
	}

	if idx := slices.Index(ids, entryID); idx >= 0 {
		ids = slices.Delete(ids, idx, idx+1)
	} else {
		ids = append(ids, entryID)
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.bridge.Set(ctx, key, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save favorites: %w", err)
	}

	s.logger.Debug("favorite toggled", "user_id", userID, "entry_id", entryID, "count", len(ids))
	return ids, nil
}

// parse never fails: non-array or non-integer data degrades to what can be salvaged.
func (s *Store) parse(key, raw string) []int64 {
	items := shared.ParseOrDefault[[]json.RawMessage](raw, nil)
	if items == nil {
		s.logger.Warn("ignoring favorites that are not a JSON array", "key", key)
		return []int64{}
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if id, ok := shared.ParseWholeNumber(item); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) != len(items) {
		s.logger.Warn("dropped malformed favorites", "key", key, "kept", len(ids), "stored", len(items))
	}
	return ids
}
