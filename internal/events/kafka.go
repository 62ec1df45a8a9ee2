package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/obs"
)

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier forwards committed domain events to Kafka. The topic is the
// event topic with an optional prefix; the key is the store id so every event
// of one store lands on the same partition.
type KafkaNotifier struct {
	Writer      MessageWriter
	TopicPrefix string
	Timeout     time.Duration

	published metric.Int64Counter
}

// NewKafkaWriter builds a writer for brokers. Returns nil when no brokers are configured.
// Messages are partitioned by key hash and batches flush after 10ms.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaNotifier wraps w. The counter is registered on the global meter provider.
func NewKafkaNotifier(w MessageWriter, prefix string) *KafkaNotifier {
	n := &KafkaNotifier{Writer: w, TopicPrefix: strings.TrimSpace(prefix), Timeout: 5 * time.Second}
	counter, err := otel.Meter("storefront-core/events").Int64Counter(
		"events.published",
		metric.WithDescription("Domain events written to Kafka"),
	)
	if err == nil {
		n.published = counter
	}
	return n
}

// Topic returns the Kafka topic for an event topic.
func (n *KafkaNotifier) Topic(topic string) string {
	return prefixed(n.TopicPrefix, topic)
}

// Notify implements Notifier.
func (n *KafkaNotifier) Notify(ctx context.Context, ev dbgen.DomainEvent) error {
	if n == nil || n.Writer == nil {
		return nil
	}
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	occurred := time.Now()
	if ev.OccurredAt.Valid {
		occurred = ev.OccurredAt.Time
	}
	msg := kafka.Message{
		Topic: n.Topic(ev.Topic),
		Key:   []byte(db.UUIDString(ev.StoreID)),
		Value: ev.Payload,
		Time:  occurred,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(db.UUIDString(ev.ID))},
			{Key: "aggregate_id", Value: []byte(db.UUIDString(ev.AggregateID))},
		},
	}
	err := n.Writer.WriteMessages(ctx, msg)
	result := "ok"
	if err != nil {
		result = "error"
	}
	obs.ObserveEventPublish(ev.Topic, result)
	if n.published != nil {
		n.published.Add(ctx, 1, metric.WithAttributes(
			attribute.String("topic", ev.Topic),
			attribute.String("result", result),
		))
	}
	if err != nil {
		return fmt.Errorf("kafka publish %s: %w", ev.Topic, err)
	}
	return nil
}

// Close releases the underlying writer.
func (n *KafkaNotifier) Close() error {
	if n == nil || n.Writer == nil {
		return nil
	}
	return n.Writer.Close()
}
