package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedidos/internal/model"
)

type recordingWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestParseBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, ParseBrokers(" a:9092, ,b:9092 "))
	assert.Empty(t, ParseBrokers(""))
}

func TestNewWithoutBrokersIsNop(t *testing.T) {
	p := New("", "pedidos.status")
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.PublishOrder(context.Background(), OrderEvent{OrderID: 1}))
}

func TestKafkaPublisherKeysByOrder(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.PublishOrder(context.Background(), OrderEvent{OrderID: 42, Status: model.StatusShipped, At: at})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	assert.Equal(t, "42", string(w.msgs[0].Key))
	var ev OrderEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, model.StatusShipped, ev.Status)
	assert.Equal(t, at, ev.At)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
