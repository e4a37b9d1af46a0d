package tracelog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/trinityguard/sentinel/event"
)

func TestRedisSinkPublishesSealedTrace(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sink := NewRedisSink(client, "traces")
	w := NewWriter(WithSink(sink))

	_, err := w.BeginTrace("t")
	require.NoError(t, err)
	require.NoError(t, w.AppendMessage(event.NewMessageLog("A", "B", "hi", nil)))
	_, err = w.EndTrace(true, "")
	require.NoError(t, err)

	entries, err := client.XRange(context.Background(), "traces", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].Values["trace"], "\"Messages\"")
}
