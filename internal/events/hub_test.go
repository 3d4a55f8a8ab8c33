package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(id string) domain.CashRegisterEvent {
	return domain.CashRegisterEvent{
		EventID:        "evt-" + id,
		Type:           domain.EventCashRegisterApproved,
		CashRegisterID: id,
		Status:         domain.CashRegisterApproved,
		OccurredAt:     time.Now(),
	}
}

func TestHub_FanOut(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	a, cancelA := hub.Subscribe(ctx)
	defer cancelA()
	b, cancelB := hub.Subscribe(ctx)
	defer cancelB()

	require.NoError(t, hub.Publish(ctx, testEvent("cr-1")))

	for _, ch := range []<-chan domain.CashRegisterEvent{a, b} {
		select {
		case got := <-ch:
			assert.Equal(t, "cr-1", got.CashRegisterID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			_ = hub.Publish(context.Background(), testEvent("cr"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestHub_UnsubscribeOnContextDone(t *testing.T) {
	hub := NewHub()
	ctx, cancelCtx := context.WithCancel(context.Background())
	ch, cancel := hub.Subscribe(ctx)
	assert.Equal(t, 1, hub.Subscribers())

	cancelCtx()
	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
	assert.Equal(t, 0, hub.Subscribers())

	cancel()
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, domain.CashRegisterEvent) error {
	f.calls++
	return errors.New("broker down")
}

func TestMultiPublisher_SwallowsErrors(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(context.Background())
	defer cancel()
	failing := &failingPublisher{}

	multi := NewMultiPublisher(nil, failing, hub)
	require.NoError(t, multi.Publish(context.Background(), testEvent("cr-9")))

	assert.Equal(t, 1, failing.calls)
	select {
	case got := <-ch:
		assert.Equal(t, "cr-9", got.CashRegisterID)
	case <-time.After(time.Second):
		t.Fatal("hub did not receive event after failing publisher")
	}
}
