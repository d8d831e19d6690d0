package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjemme/inventar/pkg/configs"
	"github.com/hjemme/inventar/pkg/queue"
)

func enabledConfig() configs.EventsConfig {
	return configs.EventsConfig{
		Enabled: true,
		Blob: configs.BlobEventsConfig{
			Stored:  true,
			Deleted: true,
		},
	}
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	logger := zerolog.Nop()
	q := queue.New(enabledConfig(), &logger)
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := q.Subscribe(ctx, queue.TopicBlobStored)
	require.NoError(t, err)

	payload := queue.BlobEventPayload{
		Blob:  queue.BlobRef{Bucket: "files", ObjectKey: "1-abc", Hash: "abc", Size: 5},
		Store: "file",
	}
	require.NoError(t, queue.Publish(q, queue.TopicBlobStored, payload))

	select {
	case msg := <-ch:
		env, err := queue.ParseWatermillMessage[queue.BlobEventPayload](msg)
		require.NoError(t, err)
		msg.Ack()

		assert.Equal(t, queue.TopicBlobStored, env.Header.Topic)
		assert.Equal(t, queue.PayloadVersionV1, env.Header.Version)
		assert.Equal(t, "files", env.Payload.Blob.Bucket)
		assert.Equal(t, "1-abc", env.Payload.Blob.ObjectKey)
		assert.Equal(t, int64(5), env.Payload.Blob.Size)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}
}

func TestPublishDisabledTopicIsNoop(t *testing.T) {
	logger := zerolog.Nop()
	cfg := enabledConfig()
	cfg.Blob.Deleted = false

	q := queue.New(cfg, &logger)
	defer q.Close()

	assert.NoError(t, queue.Publish(q, queue.TopicBlobDeleted, queue.BlobEventPayload{}))
}

func TestPublishNilQueueIsNoop(t *testing.T) {
	assert.NoError(t, queue.Publish[queue.BlobEventPayload](nil, queue.TopicBlobStored, queue.BlobEventPayload{}))
}

func TestEncodeDecodeEnvelope(t *testing.T) {
	env := queue.Message[queue.BlobEventPayload]{
		Header: queue.NewEventHeader(queue.TopicBlobDeleted),
		Payload: queue.BlobEventPayload{
			Blob:  queue.BlobRef{Bucket: "item-4", ObjectKey: "deadbeef", Hash: "deadbeef"},
			Store: "picture",
		},
	}

	b, err := queue.Encode(env)
	require.NoError(t, err)

	got, err := queue.Decode[queue.BlobEventPayload](b)
	require.NoError(t, err)
	assert.Equal(t, env.Payload, got.Payload)
	assert.Equal(t, env.Header.Topic, got.Header.Topic)
}
