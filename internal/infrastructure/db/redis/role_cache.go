package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pawsreunite/pawsreunite-api/internal/core/domain"
	"github.com/pawsreunite/pawsreunite-api/internal/core/ports"
)

const defaultRoleTTL = 10 * time.Minute

// RoleCache is a read-through cache in front of a RoleRepository. Roles are
// looked up on every authenticated request and almost never change.
// Key format: role:id:<id> and role:name:<name>
type RoleCache struct {
	client *redis.Client
	next   ports.RoleRepository
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRoleCache wraps next. A non-positive ttl uses defaultRoleTTL.
func NewRoleCache(client *redis.Client, next ports.RoleRepository, ttl time.Duration, log zerolog.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *RoleCache) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	return c.cached(ctx, idKey(id), func() (*domain.Role, error) {
		return c.next.FindByID(ctx, id)
	})
}

func (c *RoleCache) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return c.cached(ctx, nameKey(name), func() (*domain.Role, error) {
		return c.next.FindByName(ctx, name)
	})
}

func (c *RoleCache) List(ctx context.Context) ([]*domain.Role, error) {
	return c.next.List(ctx)
}

// Upsert writes through and drops the cached entries of the role.
func (c *RoleCache) Upsert(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	stored, err := c.next.Upsert(ctx, role)
	if err != nil {
		return nil, err
	}
	if err := c.client.Del(ctx, idKey(stored.ID), nameKey(stored.Name)).Err(); err != nil {
		c.log.Warn().Err(err).Str("role", stored.Name).Msg("role cache invalidation failed")
	}
	return stored, nil
}

// cached serves key from Redis or loads it. Redis failures fall back to the
// repository; a missing role is never cached.
func (c *RoleCache) cached(ctx context.Context, key string, load func() (*domain.Role, error)) (*domain.Role, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var role domain.Role
		if err := json.Unmarshal(raw, &role); err == nil {
			return &role, nil
		}
		c.log.Warn().Str("key", key).Msg("corrupt role cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("role cache read failed")
	}

	role, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(role); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("role cache write failed")
		}
	}
	return role, nil
}

func idKey(id string) string {
	return fmt.Sprintf("role:id:%s", id)
}

func nameKey(name string) string {
	return fmt.Sprintf("role:name:%s", name)
}
