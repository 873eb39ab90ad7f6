package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/roomhub/billing/internal/domain/room"
)

const roomsKey = "billing:rooms:listing"

// Rooms caches the full room+invoice listing in redis. A nil *Rooms is a
// valid disabled cache: Get misses, Set and Invalidate are no-ops. Every
// invoice write must invalidate it.
type Rooms struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRooms(addr, password string, db int, ttl time.Duration) *Rooms {
	if addr == "" {
		return nil
	}

	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Rooms{rdb: rdb, ttl: ttl}
}

func (c *Rooms) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}

	return c.rdb.Ping(ctx).Err()
}

func (c *Rooms) Get(ctx context.Context) ([]room.WithInvoices, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, roomsKey).Bytes()

	if err != nil {
		return nil, false
	}

	var rooms []room.WithInvoices

	if err := json.Unmarshal(raw, &rooms); err != nil {
		// stale or corrupt payload, drop it
		c.rdb.Del(ctx, roomsKey)
		return nil, false
	}

	return rooms, true
}

func (c *Rooms) Set(ctx context.Context, rooms []room.WithInvoices) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(rooms)

	if err != nil {
		return
	}

	c.rdb.Set(ctx, roomsKey, raw, c.ttl)
}

func (c *Rooms) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	c.rdb.Del(ctx, roomsKey)
}

func (c *Rooms) Close() error {
	if c == nil {
		return nil
	}

	return c.rdb.Close()
}
