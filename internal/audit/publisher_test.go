package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	events []Event
}

func (s *captureSink) Append(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return nil
}

func TestPublisherStampsTimestamp(t *testing.T) {
	sink := &captureSink{}
	pub := NewPublisher(sink)

	err := pub.Emit(context.Background(), Event{
		Action: ActionTagIssued,
		CertID: "CERT-B26A001-0123456789AB",
	})
	require.NoError(t, err)
	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].Timestamp.IsZero())
	assert.Equal(t, ActionTagIssued, sink.events[0].Action)
}

func TestNilPublisherIsNoop(t *testing.T) {
	var pub *Publisher
	assert.NoError(t, pub.Emit(context.Background(), Event{Action: ActionTagScanned}))
}
