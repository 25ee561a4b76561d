package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"phonewidget_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestInMemoryBus_PublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var order []int
	bus.Subscribe("ev", HandlerFunc(func(context.Context, Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("ev", HandlerFunc(func(context.Context, Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "ev"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected handlers in registration order, got %v", order)
	}
}

func TestInMemoryBus_PublishSyncCollectsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	wantErr := errors.New("boom")
	bus.Subscribe("ev", HandlerFunc(func(context.Context, Event) error { return wantErr }))
	bus.Subscribe("ev", HandlerFunc(func(context.Context, Event) error { return nil }))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "ev"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped handler error, got %v", err)
	}
}

func TestInMemoryBus_PublishIsFireAndForget(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("ev", HandlerFunc(func(context.Context, Event) error {
		wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "ev"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("handler never ran")
	}
}

func TestInMemoryBus_PublishSurvivesPanickingHandler(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	bus.Subscribe("ev", HandlerFunc(func(context.Context, Event) error {
		panic("handler exploded")
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "ev"})
	if err == nil {
		t.Fatalf("expected panic converted to error")
	}
}

func TestInMemoryBus_NoHandlersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "nobody"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
