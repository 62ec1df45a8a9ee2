package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/events"
)

type stubStore struct {
	lastParams dbgen.InsertDomainEventParams
	err        error
}

func (s *stubStore) InsertDomainEvent(_ context.Context, arg dbgen.InsertDomainEventParams) (dbgen.DomainEvent, error) {
	s.lastParams = arg
	if s.err != nil {
		return dbgen.DomainEvent{}, s.err
	}
	return dbgen.DomainEvent{
		ID:          db.UUID(uuid.New()),
		StoreID:     arg.StoreID,
		Topic:       arg.Topic,
		AggregateID: arg.AggregateID,
		Payload:     arg.Payload,
		OccurredAt:  pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}, nil
}

type captureNotifier struct {
	events []dbgen.DomainEvent
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, event dbgen.DomainEvent) error {
	c.events = append(c.events, event)
	return c.err
}

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *captureWriter) Close() error { return nil }

func TestEmitPersistsEvent(t *testing.T) {
	store := &stubStore{}
	bus := events.Bus{}
	storeID := db.UUID(uuid.New())
	aggregate := db.UUID(uuid.New())

	ev, err := bus.Emit(context.Background(), store, storeID, events.TopicOrderPaid, aggregate, map[string]any{"orderId": "123"})
	require.NoError(t, err)
	require.Equal(t, events.TopicOrderPaid, store.lastParams.Topic)
	require.Equal(t, storeID, store.lastParams.StoreID)
	require.JSONEq(t, `{"orderId":"123"}`, string(store.lastParams.Payload))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(ev.Payload, &decoded))
	require.Equal(t, "123", decoded["orderId"])
}

func TestEmitValidatesInput(t *testing.T) {
	bus := events.Bus{}
	ctx := context.Background()
	aggregate := db.UUID(uuid.New())

	_, err := bus.Emit(ctx, nil, aggregate, events.TopicOrderPaid, aggregate, nil)
	require.Error(t, err)
	_, err = bus.Emit(ctx, &stubStore{}, aggregate, " ", aggregate, nil)
	require.Error(t, err)
	_, err = bus.Emit(ctx, &stubStore{}, aggregate, events.TopicOrderPaid, pgtype.UUID{}, nil)
	require.Error(t, err)
	_, err = bus.Emit(ctx, &stubStore{}, aggregate, events.TopicOrderPaid, aggregate, "not json")
	require.Error(t, err)

	store := &stubStore{err: errors.New("boom")}
	_, err = bus.Emit(ctx, store, aggregate, events.TopicOrderPaid, aggregate, nil)
	require.ErrorContains(t, err, "persist event")
}

func TestEmitDefaultsEmptyPayload(t *testing.T) {
	store := &stubStore{}
	bus := events.Bus{}
	id := db.UUID(uuid.New())
	_, err := bus.Emit(context.Background(), store, id, events.TopicInventoryAdjusted, id, nil)
	require.NoError(t, err)
	require.Equal(t, "{}", string(store.lastParams.Payload))
}

func TestPublishJoinsNotifierErrors(t *testing.T) {
	ok := &captureNotifier{}
	failing := &captureNotifier{err: errors.New("down")}
	bus := events.Bus{Notifiers: []events.Notifier{failing, nil, ok}}

	err := bus.Publish(context.Background(), dbgen.DomainEvent{Topic: events.TopicOrderPaid})
	require.ErrorContains(t, err, "down")
	require.Len(t, ok.events, 1)
	require.Len(t, failing.events, 1)

	var nilBus *events.Bus
	require.NoError(t, nilBus.Publish(context.Background(), dbgen.DomainEvent{}))
}

func TestKafkaNotifierWritesKeyedMessage(t *testing.T) {
	w := &captureWriter{}
	n := events.NewKafkaNotifier(w, "storefront")
	storeID := db.UUID(uuid.New())
	ev := dbgen.DomainEvent{
		ID:          db.UUID(uuid.New()),
		StoreID:     storeID,
		Topic:       events.TopicOrderPaid,
		AggregateID: db.UUID(uuid.New()),
		Payload:     []byte(`{"totalCents":3600}`),
	}

	require.NoError(t, n.Notify(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	require.Equal(t, "storefront.order.paid", w.msgs[0].Topic)
	require.Equal(t, db.UUIDString(storeID), string(w.msgs[0].Key))
	require.JSONEq(t, `{"totalCents":3600}`, string(w.msgs[0].Value))

	w.err = errors.New("broker unavailable")
	require.ErrorContains(t, n.Notify(context.Background(), ev), "broker unavailable")
}

func TestKafkaNotifierWithoutWriterIsNoop(t *testing.T) {
	var n *events.KafkaNotifier
	require.NoError(t, n.Notify(context.Background(), dbgen.DomainEvent{}))
	require.Nil(t, events.NewKafkaWriter(nil))
	require.Equal(t, "order.paid", (&events.KafkaNotifier{}).Topic("order.paid"))
}

func TestKafkaWriterPartitionsByStore(t *testing.T) {
	w := events.NewKafkaWriter([]string{"localhost:9092"})
	require.NotNil(t, w)
	require.IsType(t, &kafka.Hash{}, w.Balancer)
	require.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	require.Positive(t, w.BatchTimeout)

	partitions := []int{0, 1, 2, 3}
	for _, store := range []string{"store-a", "store-b", uuid.NewString()} {
		msg := kafka.Message{Key: []byte(store)}
		first := w.Balancer.Balance(msg, partitions...)
		for i := 0; i < 8; i++ {
			require.Equal(t, first, w.Balancer.Balance(msg, partitions...), store)
		}
	}
}

func TestTopics(t *testing.T) {
	require.Equal(t, []string{"storefront.order.paid", "storefront.inventory.adjusted"}, events.Topics("storefront"))
	require.Equal(t, []string{"order.paid", "inventory.adjusted"}, events.Topics(" "))
}
