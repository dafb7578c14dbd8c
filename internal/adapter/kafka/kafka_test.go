package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/asteroid-impact-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("req-1"),
		Value:     []byte(`{"kind":"impact"}`),
		Topic:     "impact-evaluation-requests",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte("impact")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("req-1"), raw.Key)
	assert.JSONEq(t, `{"kind":"impact"}`, string(raw.Value))
	assert.Equal(t, "impact-evaluation-requests", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "impact", raw.Headers["kind"])
	assert.Nil(t, raw.Commit)
}

func TestToMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out, err := domain.SerializeResult(domain.EvaluationResult{
		ID:          "req-1",
		Kind:        domain.KindThreat,
		EvaluatedAt: now,
	})
	require.NoError(t, err)

	msg := toMessage(out)

	assert.Equal(t, []byte("req-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"kind":"threat"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "evaluated_at", msg.Headers[0].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[0].Value)
	assert.Equal(t, "kind", msg.Headers[1].Key)
	assert.Equal(t, []byte("threat"), msg.Headers[1].Value)
}

func TestToMessage_NoHeaders(t *testing.T) {
	msg := toMessage(domain.OutputEvent{Key: []byte("k"), Value: []byte("{}")})
	assert.Empty(t, msg.Headers)
}
