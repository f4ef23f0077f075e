package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned by every operation when no client is configured
var ErrDisabled = errors.New("redis is not configured")

// Nil is returned when a key does not exist
const Nil = redis.Nil

var (
	client     *redis.Client
	pingClient = func(ctx context.Context, c *redis.Client) error { return c.Ping(ctx).Err() }
)

// Init initializes the Redis client. An empty url leaves Redis disabled.
func Init(url, password string) error {
	if url == "" {
		client = nil
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pingClient(ctx, c); err != nil {
		_ = c.Close()
		return err
	}

	client = c
	return nil
}

// SetClient sets the Redis client (used for testing)
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Enabled reports whether a client is configured
func Enabled() bool {
	return client != nil
}

// Close closes the client if one is configured
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// Set stores a key-value pair with expiration
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return ErrDisabled
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value by key
func Get(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", ErrDisabled
	}
	return client.Get(ctx, key).Result()
}

// Del removes a key
func Del(ctx context.Context, key string) error {
	if client == nil {
		return ErrDisabled
	}
	return client.Del(ctx, key).Err()
}

// SetNX sets a key only if it does not exist
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if client == nil {
		return false, ErrDisabled
	}
	return client.SetNX(ctx, key, value, expiration).Result()
}

// SetJSON stores v encoded as JSON
func SetJSON(ctx context.Context, key string, v interface{}, expiration time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Set(ctx, key, data, expiration)
}

// GetJSON decodes the JSON stored at key into v. A missing key returns Nil.
func GetJSON(ctx context.Context, key string, v interface{}) error {
	data, err := Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), v)
}
