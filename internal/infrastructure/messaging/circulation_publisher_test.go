package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/pkg/circuitbreaker"
)

type published struct {
	routingKey string
	message    interface{}
}

type fakePublisher struct {
	sent  []published
	err   error
	calls int
}

func (f *fakePublisher) Publish(_ context.Context, routingKey string, message interface{}) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{routingKey: routingKey, message: message})
	return nil
}

func newTestPublisher(fake *fakePublisher, name string) *CirculationPublisher {
	return newCirculationPublisher(fake, circuitbreaker.New(circuitbreaker.Config{
		Name:             name,
		MaxRequests:      1,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	}))
}

// TestCirculationPublisher_RoutingKey 测试路由键
func TestCirculationPublisher_RoutingKey(t *testing.T) {
	fake := &fakePublisher{}
	p := newTestPublisher(fake, "publisher-routing")

	event := library.CirculationEvent{Action: library.ActionBorrowed, StudentID: 100, BookID: 1, OccurredAt: time.Now()}
	require.NoError(t, p.Publish(context.Background(), event))
	require.NoError(t, p.Publish(context.Background(), library.CirculationEvent{Action: library.ActionReturned}))

	require.Len(t, fake.sent, 2)
	assert.Equal(t, "circulation.borrowed", fake.sent[0].routingKey)
	assert.Equal(t, event, fake.sent[0].message)
	assert.Equal(t, "circulation.returned", fake.sent[1].routingKey)
}

// TestCirculationPublisher_Breaker 测试连续失败后熔断
func TestCirculationPublisher_Breaker(t *testing.T) {
	fake := &fakePublisher{err: errors.New("channel closed")}
	p := newTestPublisher(fake, "publisher-breaker")
	ctx := context.Background()

	assert.Error(t, p.Publish(ctx, library.CirculationEvent{Action: library.ActionBorrowed}))
	assert.Error(t, p.Publish(ctx, library.CirculationEvent{Action: library.ActionBorrowed}))

	err := p.Publish(ctx, library.CirculationEvent{Action: library.ActionBorrowed})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 2, fake.calls, "熔断后不再调用broker")
}
