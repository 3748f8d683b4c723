package services

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// KafkaLogSink publishes pipeline log entries to a Kafka topic so downstream
// consumers can observe delivery outcomes.
type KafkaLogSink struct {
	writer KafkaWriter
}

// NewKafkaLogSink creates a new KafkaLogSink instance.
func NewKafkaLogSink(writer KafkaWriter) *KafkaLogSink {
	return &KafkaLogSink{writer: writer}
}

// Append publishes one log entry keyed by its id. An unconfigured writer is
// skipped silently.
func (s *KafkaLogSink) Append(ctx context.Context, entry models.LogEntry) error {
	if s.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publish", "id", entry.ID)
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		logger.Log.Errorw("failed to marshal log entry for Kafka", "id", entry.ID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(entry.ID),
		Value: data,
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish log entry to Kafka", "id", entry.ID, "error", err)
		return err
	}
	return nil
}

// MultiSink fans a log entry out to several sinks, attempting all of them and
// returning the first error.
type MultiSink struct {
	sinks []LogSink
}

// NewMultiSink creates a new MultiSink instance.
func NewMultiSink(sinks ...LogSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Append forwards the entry to every sink.
func (s *MultiSink) Append(ctx context.Context, entry models.LogEntry) error {
	var first error
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, entry); err != nil && first == nil {
			first = err
		}
	}
	return first
}
