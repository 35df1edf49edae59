package kafka

import (
	"bytes"
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal"
	"github.com/scribe-data/scribe/internal/csv"
)

// Target publishes decoded records to a Kafka topic, one message per
// record, re-encoded as a single delimited line.
type Target struct {
	producer *kafka.Producer
	topic    string

	keyColumn  string
	encodeOpts []csv.Option
	logger     *zap.Logger

	buf bytes.Buffer
}

type Option func(*Target)

func WithLogger(logger *zap.Logger) Option {
	return func(t *Target) {
		t.logger = logger
	}
}

// WithKeyColumn selects the column whose value becomes the message key,
// so rows with the same key land on the same partition.
func WithKeyColumn(name string) Option {
	return func(t *Target) {
		t.keyColumn = name
	}
}

// WithEncodeOptions forwards dialect options to the record encoder.
func WithEncodeOptions(opts ...csv.Option) Option {
	return func(t *Target) {
		t.encodeOpts = append(t.encodeOpts, opts...)
	}
}

func NewTarget(brokers string, topic string, opts ...Option) (*Target, error) {
	t := &Target{
		topic:  topic,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	t.producer = producer

	go func() {
		for e := range producer.Events() {
			if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
				t.logger.Error("delivery failed",
					zap.String("topic", topic),
					zap.Error(m.TopicPartition.Error),
				)
			}
		}
	}()

	return t, nil
}

// Write encodes one record and enqueues it for delivery.
func (t *Target) Write(ctx context.Context, record *internal.Record) error {
	t.buf.Reset()

	w, err := csv.NewWriter(&t.buf, t.encodeOpts...)
	if err != nil {
		return err
	}
	if err := w.Write(record.Values()); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Produce is asynchronous; the payload must outlive the reused buffer.
	payload := append([]byte(nil), bytes.TrimRight(t.buf.Bytes(), "\r\n")...)

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &t.topic,
			Partition: kafka.PartitionAny,
		},
		Value: payload,
	}

	if t.keyColumn != "" {
		if key, ok := record.Map()[t.keyColumn]; ok {
			msg.Key = []byte(key)
		}
	}

	return t.producer.Produce(msg, nil)
}

// Flush blocks until queued messages are delivered or the timeout hits.
func (t *Target) Flush(ctx context.Context, timeoutMs int) error {
	if remaining := t.producer.Flush(timeoutMs); remaining > 0 {
		return fmt.Errorf("kafka: %d messages still queued after flush", remaining)
	}
	return nil
}

func (t *Target) Close(ctx context.Context) error {
	t.producer.Close()
	return nil
}
