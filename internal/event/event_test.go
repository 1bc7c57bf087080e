package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	return nil
}

func TestTopic(t *testing.T) {
	require.Equal(t, "customers", Event{Type: CustomerCreated}.Topic())
	require.Equal(t, "addresses", Event{Type: AddressDeleted}.Topic())
}

func TestKafkaPublisher(t *testing.T) {
	logger, _ := test.NewNullLogger()
	now := time.Date(2022, time.August, 10, 12, 0, 0, 0, time.UTC)

	t.Log("event is written to entity topic keyed by id")
	{
		w := &recordingWriter{}
		pub := &kafkaPublisher{writer: w, logger: logger}

		err := pub.Publish(context.Background(), New(CustomerCreated, "c1", map[string]string{"id": "c1"}, now))
		require.NoError(t, err, "failed to publish event")
		require.Len(t, w.messages, 1)

		msg := w.messages[0]
		require.Equal(t, "customers", msg.Topic)
		require.Equal(t, "c1", string(msg.Key))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		require.Equal(t, CustomerCreated, decoded["type"])
		require.Equal(t, "2022-08-10T12:00:00Z", decoded["occurredAt"])
	}

	t.Log("writer failure is reported")
	{
		pub := &kafkaPublisher{writer: &recordingWriter{err: errors.New("broker is down")}, logger: logger}
		err := pub.Publish(context.Background(), New(AddressUpdated, "a1", nil, now))
		require.Error(t, err, "write error must be propagated")
	}
}

func TestLogPublisher(t *testing.T) {
	logger, hook := test.NewNullLogger()

	pub := NewLogPublisher(logger)
	err := pub.Publish(context.Background(), New(AddressDeleted, "a1", nil, time.Now()))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry, "event must be logged")
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "addresses", entry.Data["topic"])
}
