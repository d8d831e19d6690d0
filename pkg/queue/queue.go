// Package queue publishes blob lifecycle events over an in-process
// publish/subscribe channel.
//
// Messages are a uniform envelope, Message[Payload] = Header + Payload,
// JSON-encoded with bytedance/sonic. Topic constants live in topics.go and
// payload structs in payloads.go.
package queue

import (
	"context"
	"fmt"
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/hjemme/inventar/pkg/configs"
)

const PayloadVersionV1 string = "v1"

// EventHeader is the common header carried by every event.
type EventHeader struct {
	Topic      string    `json:"topic"`
	Producer   string    `json:"producer,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Version    string    `json:"version,omitempty"`
}

// Message is the uniform envelope, Header plus topic-specific payload.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// NewEventHeader builds an event header stamped with the current UTC time.
func NewEventHeader(topic string) EventHeader {
	return EventHeader{
		Topic:      topic,
		Producer:   "inventar",
		OccurredAt: time.Now().UTC(),
		Version:    PayloadVersionV1,
	}
}

// Encode marshals an envelope to JSON.
func Encode[T any](msg Message[T]) ([]byte, error) { return sonic.Marshal(msg) }

// Decode unmarshals an envelope from JSON.
func Decode[T any](b []byte) (Message[T], error) {
	var m Message[T]

	err := sonic.Unmarshal(b, &m)

	return m, err
}

// NewWatermillMessage wraps a payload into an envelope and a watermill message.
func NewWatermillMessage[T any](topic string, payload T) (*message.Message, error) {
	header := NewEventHeader(topic)
	env := Message[T]{Header: header, Payload: payload}

	data, err := Encode(env)
	if err != nil {
		return nil, err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set("topic", topic)
	msg.Metadata.Set("occurred_at", header.OccurredAt.Format(time.RFC3339Nano))

	return msg, nil
}

// ParseWatermillMessage decodes the typed envelope out of a watermill message.
func ParseWatermillMessage[T any](msg *message.Message) (Message[T], error) {
	return Decode[T](msg.Payload)
}

// Queue is the in-process pub/sub. Publishing on a disabled queue is a no-op
// so callers never need to branch on configuration.
type Queue struct {
	cfg    configs.EventsConfig
	pubsub *gochannel.GoChannel
	logger *zerolog.Logger
}

// New builds the in-process queue.
func New(cfg configs.EventsConfig, logger *zerolog.Logger) *Queue {
	return &Queue{
		cfg:    cfg,
		pubsub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{}),
		logger: logger,
	}
}

// Publish encodes the payload and publishes it on the topic. The topic-level
// configuration switch is honored here.
func Publish[T any](q *Queue, topic string, payload T) error {
	if q == nil || !q.enabled(topic) {
		return nil
	}

	msg, err := NewWatermillMessage(topic, payload)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", topic, err)
	}

	if err := q.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish event %s: %w", topic, err)
	}

	return nil
}

// Subscribe returns the raw message channel for a topic.
func (q *Queue) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return q.pubsub.Subscribe(ctx, topic)
}

// StartLogConsumer drains the blob topics into the log until ctx is done.
func (q *Queue) StartLogConsumer(ctx context.Context) error {
	if q == nil || !q.cfg.Enabled {
		return nil
	}

	for _, topic := range []string{TopicBlobStored, TopicBlobDeleted} {
		ch, err := q.pubsub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		go func(topic string, ch <-chan *message.Message) {
			for msg := range ch {
				env, err := ParseWatermillMessage[BlobEventPayload](msg)
				if err != nil {
					q.logger.Warn().Err(err).Str("topic", topic).Msg("undecodable event")
					msg.Ack()

					continue
				}

				q.logger.Info().
					Str("topic", topic).
					Str("bucket", env.Payload.Blob.Bucket).
					Str("object_key", env.Payload.Blob.ObjectKey).
					Str("hash", env.Payload.Blob.Hash).
					Int64("size", env.Payload.Blob.Size).
					Msg("blob event")
				msg.Ack()
			}
		}(topic, ch)
	}

	return nil
}

// Close shuts down the pub/sub channel.
func (q *Queue) Close() error {
	if q == nil {
		return nil
	}

	return q.pubsub.Close()
}

func (q *Queue) enabled(topic string) bool {
	if !q.cfg.Enabled {
		return false
	}

	switch topic {
	case TopicBlobStored:
		return q.cfg.Blob.Stored
	case TopicBlobDeleted:
		return q.cfg.Blob.Deleted
	default:
		return true
	}
}
