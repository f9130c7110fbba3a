package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"synthara-api/models"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the slice of Redis the state store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

type redisClient struct {
	redisClient *redis.Client
}

func NewRedisClient(ctx context.Context, addr string) (*redisClient, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolSize:        5,
	})
	if err := rc.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &redisClient{redisClient: rc}, nil
}

func (c *redisClient) Get(ctx context.Context, key string) (string, error) {
	v, err := c.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (c *redisClient) Set(ctx context.Context, key, value string) error {
	return c.redisClient.Set(ctx, key, value, 0).Err()
}

func (c *redisClient) SAdd(ctx context.Context, key string, members ...string) error {
	return c.redisClient.SAdd(ctx, key, members).Err()
}

func (c *redisClient) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.redisClient.SMembers(ctx, key).Result()
}

const (
	redisTicketsKey     = "synthara:tickets:"
	redisEconomyKey     = "synthara:economy:"
	redisTicketUsersKey = "synthara:ticket-users"
)

// RedisStore keeps state as JSON documents in Redis so several replicas can share it.
type RedisStore struct {
	client RedisClient
}

func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) getObj(ctx context.Context, key string, v any) error {
	raw, err := r.client.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *RedisStore) setObj(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.client.Set(ctx, key, string(b))
}

func (r *RedisStore) GetTickets(ctx context.Context, userID string) ([]models.RewardTicket, error) {
	var tickets []models.RewardTicket
	if err := r.getObj(ctx, redisTicketsKey+userID, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []models.RewardTicket{}
	}
	return tickets, nil
}

func (r *RedisStore) PutTickets(ctx context.Context, userID string, tickets []models.RewardTicket) error {
	if tickets == nil {
		tickets = []models.RewardTicket{}
	}
	if err := r.setObj(ctx, redisTicketsKey+userID, tickets); err != nil {
		return err
	}
	return r.client.SAdd(ctx, redisTicketUsersKey, userID)
}

func (r *RedisStore) TicketUsers(ctx context.Context) ([]string, error) {
	users, err := r.client.SMembers(ctx, redisTicketUsersKey)
	if err != nil {
		return nil, err
	}
	sort.Strings(users)
	return users, nil
}

func (r *RedisStore) GetSnapshot(ctx context.Context, userID string) (*models.EconomySnapshot, error) {
	var snapshot models.EconomySnapshot
	if err := r.getObj(ctx, redisEconomyKey+userID, &snapshot); err != nil {
		return nil, err
	}
	snapshot.Normalize()
	return &snapshot, nil
}

func (r *RedisStore) PutSnapshot(ctx context.Context, userID string, snapshot *models.EconomySnapshot) error {
	return r.setObj(ctx, redisEconomyKey+userID, snapshot)
}
