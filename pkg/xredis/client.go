package xredis

import (
	"context"
	"time"

	"github.com/Lyttaaa/Maitre-des-qu-tes/pkg/xcontext"
	"github.com/redis/go-redis/v9"
)

type Client interface {
	Del(ctx context.Context, key ...string) error

	// Set
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)

	// Watch runs fn in an optimistic transaction. The transaction fails with
	// redis.TxFailedErr if any watched key changes before fn commits.
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
}

type client struct {
	redisClient *redis.Client
}

func NewClient(ctx context.Context) (*client, error) {
	c := New(xcontext.Configs(ctx).Redis.Addr)
	if err := c.redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return c, nil
}

// New does not check the connection.
func New(addr string) *client {
	return &client{redisClient: redis.NewClient(&redis.Options{
		Addr:            addr,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolFIFO:        false,
		PoolSize:        5,
	})}
}

func (c *client) Close() error {
	return c.redisClient.Close()
}

///// COMMON FEATURE
func (c *client) Del(ctx context.Context, key ...string) error {
	err := c.redisClient.Del(ctx, key...).Err()
	if err == nil || err == redis.Nil {
		return nil
	}

	return err
}

///// SET
func (c *client) SAdd(ctx context.Context, key string, members ...string) error {
	return c.redisClient.SAdd(ctx, key, members).Err()
}

func (c *client) SMembers(ctx context.Context, key string) ([]string, error) {
	return c.redisClient.SMembers(ctx, key).Result()
}

///// TRANSACTION
func (c *client) Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error {
	return c.redisClient.Watch(ctx, fn, keys...)
}
