package tracelog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/trinityguard/sentinel/event"
)

// RedisSink publishes each sealed trace as a JSON-Lines record to a Redis
// stream, for fan-out to external observability systems that want to
// consume trace events without sharing a filesystem with the harness
// process.
type RedisSink struct {
	client *redis.Client
	stream string
}

// NewRedisSink wires a sink onto an existing client, publishing to stream.
func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	return &RedisSink{client: client, stream: stream}
}

func (s *RedisSink) WriteTrace(trace event.WorkflowTrace) error {
	payload, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("tracelog: marshaling trace for redis: %w", err)
	}

	ctx := context.Background()
	if err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{"trace": string(payload)},
	}).Err(); err != nil {
		return fmt.Errorf("tracelog: publishing trace to redis stream %q: %w", s.stream, err)
	}
	return nil
}
