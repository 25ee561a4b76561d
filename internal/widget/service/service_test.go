package service

import (
	"context"
	"sync"
	"testing"

	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/phone"
	"phonewidget_backend/internal/sessions"
	"phonewidget_backend/internal/widget/domain"
	"phonewidget_backend/platform/apperr"
	"phonewidget_backend/platform/events"
	"phonewidget_backend/platform/logger"
)

// recordingBus captures published events synchronously for assertions.
type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.published))
	for _, e := range b.published {
		out = append(out, e.EventName())
	}
	return out
}

func newService(t *testing.T) (*Service, *recordingBus) {
	t.Helper()
	reg := countries.NewRegistry()
	bus := &recordingBus{}
	svc := New(reg, phone.New(reg), sessions.NewMemoryStore(), bus, logger.New("test"), domain.Options{
		PreferredCountries: []string{"US", "GB"},
		ApplyMask:          true,
	})
	return svc, bus
}

func TestCreate_InitialValueAppliedSilently(t *testing.T) {
	svc, bus := newService(t)

	view, err := svc.Create(context.Background(), domain.Options{InitialValue: "+16502530000", ApplyMask: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.ID == "" {
		t.Fatalf("expected an instance id")
	}
	if view.State.NormalizedValue != "+16502530000" || !view.State.Valid {
		t.Fatalf("expected initial value normalized, got %+v", view.State)
	}
	if view.State.Country != "US" {
		t.Fatalf("expected first preferred country, got %s", view.State.Country)
	}
	if view.Placeholder == "" {
		t.Fatalf("expected derived placeholder")
	}
	if len(view.MaskPatterns) == 0 {
		t.Fatalf("expected mask patterns")
	}
	if got := bus.names(); len(got) != 0 {
		t.Fatalf("expected no notifications on create, got %v", got)
	}
}

func TestDispatch_PublishesNotificationsAndPersists(t *testing.T) {
	svc, bus := newService(t)

	view, err := svc.Create(context.Background(), domain.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Dispatch(context.Background(), view.ID, domain.Typing{Value: "+16502530000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.State.Valid || !updated.State.Dirty {
		t.Fatalf("expected valid dirty state, got %+v", updated.State)
	}

	names := bus.names()
	if len(names) != 1 || names[0] != domain.EventChanged {
		t.Fatalf("expected one change notification, got %v", names)
	}

	// The new state must survive a reload.
	reloaded, err := svc.Get(context.Background(), view.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.State != updated.State {
		t.Fatalf("state not persisted: %+v vs %+v", reloaded.State, updated.State)
	}
}

func TestDispatch_UnknownInstance(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Dispatch(context.Background(), "missing", domain.Toggle{})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestDelete_RemovesInstance(t *testing.T) {
	svc, _ := newService(t)

	view, err := svc.Create(context.Background(), domain.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), view.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(context.Background(), view.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestCountries_DefaultsAndFilter(t *testing.T) {
	svc, _ := newService(t)

	list := svc.Countries(nil, "")
	if list[0].Code != "US" || list[1].Code != "GB" {
		t.Fatalf("expected default preferred pinned, got %s,%s", list[0].Code, list[1].Code)
	}

	filtered := svc.Countries([]string{"NL"}, "+31")
	if len(filtered) == 0 || filtered[0].Code != "NL" {
		t.Fatalf("expected NL first for +31, got %v", filtered)
	}
}

func TestCountryByDialCode(t *testing.T) {
	svc, _ := newService(t)

	country, err := svc.CountryByDialCode("31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if country.Code != "NL" {
		t.Fatalf("expected NL for dial code 31, got %s", country.Code)
	}

	if _, err := svc.CountryByDialCode("999"); !apperr.Is(err, apperr.KindCountryNotFound) {
		t.Fatalf("expected CountryNotFound, got %v", err)
	}
}
