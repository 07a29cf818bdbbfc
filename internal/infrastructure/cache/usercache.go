package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lumastory/lumastory/internal/domain/user"
	vo "github.com/lumastory/lumastory/internal/domain/user/valueobjects"
	"github.com/lumastory/lumastory/internal/shared/authorization"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

const (
	userKeyPrefix       = "user:profile:"
	defaultUserTTL      = 60 * time.Second
	userNullMarkerTTL   = 10 * time.Second
	fieldEmail          = "email"
	fieldDisplayName    = "display_name"
	fieldTier           = "tier"
	fieldRole           = "role"
	fieldStripeCustomer = "stripe_customer_id"
	fieldCreatedAt      = "created_at"
	fieldUpdatedAt      = "updated_at"
	fieldNullMarker     = "_null"
)

// CachedUserRepository puts a Redis hash in front of user.Repository reads by
// id. Writes go to the database first and then drop the cached entry. Redis
// errors degrade to a database read.
type CachedUserRepository struct {
	user.Repository
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewCachedUserRepository(repo user.Repository, client *redis.Client, ttl time.Duration, logger logger.Interface) *CachedUserRepository {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &CachedUserRepository{
		Repository: repo,
		client:     client,
		ttl:        ttl,
		logger:     logger,
	}
}

func (c *CachedUserRepository) key(userID string) string {
	return userKeyPrefix + userID
}

func (c *CachedUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	cached, hit, err := c.get(ctx, id)
	if err != nil {
		c.logger.Warnw("user cache read failed, falling back to database", "user_id", id, "error", err)
	} else if hit {
		return cached, nil
	}

	u, err := c.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u == nil {
		c.setNullMarker(ctx, id)
		return nil, nil
	}
	c.set(ctx, u)
	return u, nil
}

func (c *CachedUserRepository) Create(ctx context.Context, u *user.User) error {
	if err := c.Repository.Create(ctx, u); err != nil {
		return err
	}
	c.evict(ctx, u.ID())
	return nil
}

func (c *CachedUserRepository) Update(ctx context.Context, u *user.User) error {
	if err := c.Repository.Update(ctx, u); err != nil {
		return err
	}
	c.evict(ctx, u.ID())
	return nil
}

// evict drops the cached entry after a committed write. A failed DEL is only
// logged: the write already succeeded and the stale entry expires with the TTL.
func (c *CachedUserRepository) evict(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Warnw("failed to invalidate user cache, entry expires with ttl",
			"user_id", userID,
			"ttl", c.ttl,
			"error", err,
		)
		return
	}
	c.logger.Debugw("user cache invalidated", "user_id", userID)
}

// get returns hit=true with a nil user for a cached not-found marker.
func (c *CachedUserRepository) get(ctx context.Context, id string) (*user.User, bool, error) {
	result, err := c.client.HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, false, nil
	}
	if result[fieldNullMarker] == "1" {
		return nil, true, nil
	}

	var stripeCustomerID *string
	if v := result[fieldStripeCustomer]; v != "" {
		stripeCustomerID = &v
	}
	createdAt, err := parseUnixNano(result[fieldCreatedAt])
	if err != nil {
		return nil, false, err
	}
	updatedAt, err := parseUnixNano(result[fieldUpdatedAt])
	if err != nil {
		return nil, false, err
	}

	u, err := user.ReconstructUser(
		id,
		result[fieldEmail],
		result[fieldDisplayName],
		vo.Tier(result[fieldTier]),
		authorization.UserRole(result[fieldRole]),
		stripeCustomerID,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt user cache entry: %w", err)
	}
	return u, true, nil
}

func (c *CachedUserRepository) set(ctx context.Context, u *user.User) {
	stripeCustomerID := ""
	if u.StripeCustomerID() != nil {
		stripeCustomerID = *u.StripeCustomerID()
	}

	fields := map[string]interface{}{
		fieldEmail:          u.Email(),
		fieldDisplayName:    u.DisplayName(),
		fieldTier:           u.Tier().String(),
		fieldRole:           string(u.Role()),
		fieldStripeCustomer: stripeCustomerID,
		fieldCreatedAt:      u.CreatedAt().UnixNano(),
		fieldUpdatedAt:      u.UpdatedAt().UnixNano(),
	}

	key := c.key(u.ID())
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("failed to cache user", "user_id", u.ID(), "error", err)
	}
}

func (c *CachedUserRepository) setNullMarker(ctx context.Context, id string) {
	key := c.key(id)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, fieldNullMarker, "1")
	pipe.Expire(ctx, key, userNullMarkerTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warnw("failed to cache user null marker", "user_id", id, "error", err)
	}
}

func parseUnixNano(s string) (time.Time, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt user cache timestamp %q: %w", s, err)
	}
	return time.Unix(0, n).UTC(), nil
}
