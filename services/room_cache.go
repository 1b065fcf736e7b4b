package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"hotel-ops/models"

	"github.com/go-redis/redis/v8"
)

// RoomCache holds the full room listing between writes.
type RoomCache interface {
	Get(ctx context.Context) ([]models.Room, bool, error)
	Set(ctx context.Context, rooms []models.Room) error
	Invalidate(ctx context.Context) error
}

const roomsCacheKey = "rooms"

type RedisRoomCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRoomCache(client *redis.Client, ttl time.Duration) *RedisRoomCache {
	return &RedisRoomCache{client: client, ttl: ttl}
}

func (c *RedisRoomCache) Get(ctx context.Context) ([]models.Room, bool, error) {
	data, err := c.client.Get(ctx, roomsCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, false, err
	}
	return rooms, true, nil
}

func (c *RedisRoomCache) Set(ctx context.Context, rooms []models.Room) error {
	b, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomsCacheKey, b, c.ttl).Err()
}

func (c *RedisRoomCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, roomsCacheKey).Err()
}

// MemoryRoomCache is used when no Redis address is configured.
type MemoryRoomCache struct {
	mu      sync.RWMutex
	rooms   []models.Room
	expires time.Time
	ttl     time.Duration
}

func NewMemoryRoomCache(ttl time.Duration) *MemoryRoomCache {
	return &MemoryRoomCache{ttl: ttl}
}

func (c *MemoryRoomCache) Get(_ context.Context) ([]models.Room, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.rooms == nil || time.Now().After(c.expires) {
		return nil, false, nil
	}
	out := make([]models.Room, len(c.rooms))
	copy(out, c.rooms)
	return out, true, nil
}

func (c *MemoryRoomCache) Set(_ context.Context, rooms []models.Room) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms = make([]models.Room, len(rooms))
	copy(c.rooms, rooms)
	c.expires = time.Now().Add(c.ttl)
	return nil
}

func (c *MemoryRoomCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms = nil
	return nil
}
