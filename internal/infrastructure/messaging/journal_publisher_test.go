package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/warehouse/internal/domain/journal"
	"github.com/xiebiao/warehouse/pkg/circuitbreaker"
)

type recordingSender struct {
	keys     []string
	messages []interface{}
	err      error
}

func (s *recordingSender) Publish(_ context.Context, routingKey string, message interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.keys = append(s.keys, routingKey)
	s.messages = append(s.messages, message)
	return nil
}

func TestJournalPublisher_Publish(t *testing.T) {
	sender := &recordingSender{}
	pub := NewJournalPublisher(sender, nil)

	batchID := uint(7)
	e, err := journal.NewEntry(journal.OperationOut, 3, 12, nil, &batchID, "op", journal.NotePartialIssue)
	require.NoError(t, err)
	e.ID = 42

	require.NoError(t, pub.Publish(context.Background(), e))

	assert.Equal(t, []string{"journal.out"}, sender.keys)
	event, ok := sender.messages[0].(JournalEvent)
	require.True(t, ok)
	assert.Equal(t, uint(42), event.EntryID)
	assert.Equal(t, "OUT", event.OperationType)
	assert.Equal(t, &batchID, event.BatchID)
	assert.Nil(t, event.RackID)
}

func TestJournalPublisher_Error(t *testing.T) {
	pub := NewJournalPublisher(&recordingSender{err: errors.New("channel closed")}, nil)
	e, _ := journal.NewEntry(journal.OperationIn, 1, 1, nil, nil, "op", "")

	assert.Error(t, pub.Publish(context.Background(), e))
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), e))
}

func TestJournalPublisher_BreakerOpens(t *testing.T) {
	sender := &countingSender{err: errors.New("connection refused")}
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "journal",
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
	pub := NewJournalPublisher(sender, breaker)
	e, _ := journal.NewEntry(journal.OperationIn, 1, 1, nil, nil, "op", "")

	assert.Error(t, pub.Publish(context.Background(), e))
	assert.Error(t, pub.Publish(context.Background(), e))

	// 熔断后不再调用RabbitMQ
	err := pub.Publish(context.Background(), e)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Equal(t, 2, sender.calls)
}

type countingSender struct {
	calls int
	err   error
}

func (s *countingSender) Publish(context.Context, string, interface{}) error {
	s.calls++
	return s.err
}
