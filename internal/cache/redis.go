package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	pointsKeyPrefix     = "loyalty:points:"
	generationKeyPrefix = "loyalty:points-gen:"
)

// setIfCurrent writes KEYS[1] only while KEYS[2] still holds ARGV[1]. A
// missing generation counts as 0.
var setIfCurrent = redis.NewScript(`
local gen = tonumber(redis.call("GET", KEYS[2]) or "0")
if gen ~= tonumber(ARGV[1]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// PointsCache stores customer points summaries in Redis as JSON.
type PointsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPointsCache(client *redis.Client, ttl time.Duration) *PointsCache {
	return &PointsCache{client: client, ttl: ttl}
}

func PointsKey(phone string) string {
	return pointsKeyPrefix + phone
}

func GenerationKey(phone string) string {
	return generationKeyPrefix + phone
}

// GetPoints reads the summary and the phone's generation in one round trip.
// A miss returns a nil summary with the generation to hand to SetPoints.
func (c *PointsCache) GetPoints(ctx context.Context, phone string) (*domain.PointsSummary, int64, error) {
	vals, err := c.client.MGet(ctx, PointsKey(phone), GenerationKey(phone)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis mget: %w", err)
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		return nil, 0, err
	}
	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}

	var summary domain.PointsSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, 0, fmt.Errorf("decode cached points: %w", err)
	}
	return &summary, gen, nil
}

// SetPoints is a no-op when the phone was invalidated after generation was
// read.
func (c *PointsCache) SetPoints(ctx context.Context, summary domain.PointsSummary, generation int64) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	keys := []string{PointsKey(summary.PhoneNumber), GenerationKey(summary.PhoneNumber)}
	err = setIfCurrent.Run(ctx, c.client, keys, generation, raw, c.ttl.Milliseconds()).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *PointsCache) InvalidatePoints(ctx context.Context, phone string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(phone))
		pipe.Del(ctx, PointsKey(phone))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

func parseGeneration(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse points generation %q: %w", s, err)
	}
	return gen, nil
}

// Connect opens a client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to ping redis: %w", err)
	}
	return client, nil
}
