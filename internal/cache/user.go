package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rollcall/rollcall/internal/model"
)

const (
	// userCachePrefix is the Redis key prefix for resolved users.
	userCachePrefix = "user:id:"
	// userCacheTTL bounds how long a resolved user is served from
	// cache. Users are never mutated or deleted in this system, so a
	// cached entry cannot go stale within scope; the TTL just keeps
	// the working set small.
	userCacheTTL = 5 * time.Minute
)

// cachedUser is the subset of the user stored in Redis. The password
// hash never enters the cache.
type cachedUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

// GetUser retrieves a cached user by ID.
// Returns nil on a miss or a corrupted entry.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	data, err := c.client.Get(ctx, userCachePrefix+id).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		ID:       cached.ID,
		Email:    cached.Email,
		Username: cached.Username,
		Active:   cached.Active,
	}, nil
}

// SetUser caches a resolved user.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	cached := cachedUser{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Active:   user.Active,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return c.client.Set(ctx, userCachePrefix+user.ID, data, userCacheTTL).Err()
}
