package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nihalhub/paylite-relay/internal/logger"
)

// KafkaReader defines the Kafka reader abstraction used by the Kafka event
// source.
type KafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// NotificationHandler receives raw notification events.
type NotificationHandler interface {
	HandleIncoming(sender, message string)
}

// KafkaEventSource consumes raw `{sender, message}` notification events from
// a Kafka topic. It is the broker-fed alternative to the HTTP ingest
// endpoint; the variant is chosen at startup.
type KafkaEventSource struct {
	reader  KafkaReader
	handler NotificationHandler
}

// NewKafkaEventSource creates a new KafkaEventSource instance.
func NewKafkaEventSource(reader KafkaReader, handler NotificationHandler) *KafkaEventSource {
	return &KafkaEventSource{reader: reader, handler: handler}
}

type kafkaNotification struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Run consumes events until ctx is cancelled. Malformed messages are logged
// and skipped.
func (s *KafkaEventSource) Run(ctx context.Context) {
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Log.Errorw("failed to read notification from Kafka", "error", err)
			if !sleepCtx(ctx, time.Second) {
				return
			}
			continue
		}

		var n kafkaNotification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			logger.Log.Warnw("malformed notification message, skipping", "error", err)
			continue
		}

		s.handler.HandleIncoming(n.Sender, n.Message)
	}
}
