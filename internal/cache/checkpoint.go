package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cinedex/internal/observability"

	"github.com/redis/go-redis/v9"
)

// CheckpointTTL bounds how long a finished or abandoned run's progress is remembered.
const CheckpointTTL = 7 * 24 * time.Hour

// Checkpoint stores the number of the last completed seed step.
type Checkpoint struct {
	client *redis.Client
	key    string
}

// NewCheckpoint creates a checkpoint on key. A nil client makes it a no-op that always reads 0.
func NewCheckpoint(client *redis.Client, key string) *Checkpoint {
	return &Checkpoint{client: client, key: key}
}

// Save records step as completed.
func (c *Checkpoint) Save(ctx context.Context, step int) error {
	if c.client == nil {
		return nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "checkpoint_save")
	defer span.End()

	if err := c.client.Set(ctx, c.key, step, CheckpointTTL).Err(); err != nil {
		observability.RecordError(span, err)
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// Load returns the last completed step, or 0 when none is recorded.
func (c *Checkpoint) Load(ctx context.Context) (int, error) {
	if c.client == nil {
		return 0, nil
	}
	ctx, span := observability.TraceRedisOperation(ctx, "checkpoint_load")
	defer span.End()

	raw, err := c.client.Get(ctx, c.key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		observability.RecordError(span, err)
		return 0, fmt.Errorf("load checkpoint: %w", err)
	}
	step, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("corrupt checkpoint %q: %w", raw, err)
	}
	return step, nil
}

// Clear forgets the checkpoint.
func (c *Checkpoint) Clear(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("clear checkpoint: %w", err)
	}
	return nil
}
