package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	models "github.com/btair/btair/internal"
)

const flightsKey = "cache:flights"

// RedisCache keeps the flight list in Redis so the most common read on the
// site does not hit Postgres every time.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetFlights returns the cached flight list, or (nil, nil) on a miss.
func (c *RedisCache) GetFlights(ctx context.Context) ([]models.Flight, error) {
	payload, err := c.client.Get(ctx, flightsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var flights []models.Flight
	if err = json.Unmarshal(payload, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []models.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey, payload, c.ttl).Err()
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
