package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/backoffice/internal/domain/event"
	"github.com/xiebiao/backoffice/internal/infrastructure/config"
	"github.com/xiebiao/backoffice/pkg/circuitbreaker"
)

type fakeBroker struct {
	keys []string
	err  error
}

func (b *fakeBroker) Publish(_ context.Context, routingKey string, _ interface{}) error {
	b.keys = append(b.keys, routingKey)
	return b.err
}

func TestBrokerPublisher_Publish(t *testing.T) {
	b := &fakeBroker{}
	p := NewBrokerPublisher(b, config.MQConfig{}, zap.NewNop())

	e := event.Changed(event.EntityOrder, event.ActionAdd, 12)
	require.NoError(t, p.Publish(context.Background(), *e))
	assert.Equal(t, []string{"order.add"}, b.keys)
}

func TestBrokerPublisher_TripsBreaker(t *testing.T) {
	b := &fakeBroker{err: errors.New("connection reset")}
	p := NewBrokerPublisher(b, config.MQConfig{
		BreakerFailures:  2,
		BreakerOpenDelay: time.Minute,
	}, zap.NewNop())

	e := *event.Changed(event.EntityCart, event.ActionEdit, 0)
	ctx := context.Background()

	assert.Error(t, p.Publish(ctx, e))
	assert.Error(t, p.Publish(ctx, e))
	assert.Equal(t, circuitbreaker.StateOpen, p.State())

	// 熔断后不再调用broker
	err := p.Publish(ctx, e)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Len(t, b.keys, 2)
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	e := event.Changed(event.EntityDiscount, event.ActionDelete, 3)
	require.NoError(t, p.Publish(context.Background(), *e))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "discount.delete", entry.ContextMap()["routing_key"])
	assert.Equal(t, e.ID, entry.ContextMap()["event_id"])
}

func TestFanout(t *testing.T) {
	var got []string
	ok := event.PublisherFunc(func(_ context.Context, e event.Event) error {
		got = append(got, e.RoutingKey())
		return nil
	})
	bad := event.PublisherFunc(func(context.Context, event.Event) error {
		return errors.New("down")
	})

	f := Fanout{bad, ok}
	err := f.Publish(context.Background(), *event.Changed(event.EntityOrder, event.ActionEdit, 1))
	assert.EqualError(t, err, "down")
	assert.Equal(t, []string{"order.edit"}, got, "前一个失败不影响后续投递")
}

func TestNewEventPublisher_Disabled(t *testing.T) {
	cfg := &config.Config{}
	pub, cleanup := NewEventPublisher(cfg, zap.NewNop())
	defer cleanup()

	_, isLog := pub.(*LogPublisher)
	assert.True(t, isLog)
}
