// Package service owns widget instance lifecycle for the HTTP adapter:
// create, load-apply-save around each inbound event, render views, delete.
// Outbound notifications are published fire-and-forget on the event bus.
package service

import (
	"context"

	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/phone"
	"phonewidget_backend/internal/sessions"
	"phonewidget_backend/internal/widget/domain"
	"phonewidget_backend/platform/events"
	"phonewidget_backend/platform/logger"

	"github.com/google/uuid"
)

// Service coordinates the registry, normalizer, session store and event bus
// for all widget instances.
type Service struct {
	reg      *countries.Registry
	norm     *phone.Normalizer
	store    sessions.Store
	bus      events.Bus
	log      *logger.Logger
	defaults domain.Options
}

// View is the renderable snapshot the presentation adapter consumes.
type View struct {
	ID           string              `json:"id"`
	State        domain.State        `json:"state"`
	Placeholder  string              `json:"placeholder"`
	MaskPatterns []string            `json:"maskPatterns"`
	Countries    []countries.Country `json:"countries"`
	TabIndex     int                 `json:"tabIndex"`
}

// New creates the widget service. defaults seed options for instances that
// do not override them.
func New(reg *countries.Registry, norm *phone.Normalizer, store sessions.Store, bus events.Bus, log *logger.Logger, defaults domain.Options) *Service {
	return &Service{reg: reg, norm: norm, store: store, bus: bus, log: log, defaults: defaults}
}

// Create builds a new instance, applies the initial value silently and
// persists the result.
func (s *Service) Create(ctx context.Context, opts domain.Options) (View, error) {
	opts = s.merge(opts)

	id := uuid.NewString()
	m := domain.New(id, s.reg, s.norm, opts)

	// A silent refresh gives an instance without an initial value the chance
	// to recover one from the bound external field. With an initial value it
	// is a no-op.
	m.Apply(domain.Refresh{Value: opts.InitialValue, Silent: true})

	inst := sessions.Instance{ID: id, Options: opts, State: m.State()}
	if err := s.store.Put(ctx, inst); err != nil {
		s.log.SessionStoreError("put", err)
		return View{}, err
	}

	return s.view(m), nil
}

// Dispatch loads the instance, applies one inbound event, persists the new
// state and publishes the resulting notifications.
func (s *Service) Dispatch(ctx context.Context, id string, ev domain.Event) (View, error) {
	inst, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	m := domain.Restore(id, s.reg, s.norm, s.merge(inst.Options), inst.State)
	notifications := m.Apply(ev)

	inst.State = m.State()
	if err := s.store.Put(ctx, inst); err != nil {
		s.log.SessionStoreError("put", err)
		return View{}, err
	}

	for _, n := range notifications {
		s.log.Notification(n.EventName(), id)
		s.bus.Publish(ctx, n)
	}

	state := m.State()
	s.log.WidgetEvent(id, ev.Name(), state.Valid, state.Dirty)

	return s.view(m), nil
}

// Get returns the renderable view of an instance.
func (s *Service) Get(ctx context.Context, id string) (View, error) {
	inst, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	m := domain.Restore(id, s.reg, s.norm, s.merge(inst.Options), inst.State)
	return s.view(m), nil
}

// Delete removes an instance.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Countries lists the country table with a preferred overlay and filter,
// independent of any instance.
func (s *Service) Countries(preferredCodes []string, term string) []countries.Country {
	if len(preferredCodes) == 0 {
		preferredCodes = s.defaults.PreferredCountries
	}
	list := s.reg.List(preferredCodes)
	return s.reg.Filter(list, term, s.defaults.DisplayName)
}

// CountryByDialCode resolves an exact dial-code string to its canonical
// country.
func (s *Service) CountryByDialCode(digits string) (countries.Country, error) {
	return s.reg.GetByRegionCode(digits)
}

func (s *Service) view(m *domain.Machine) View {
	opts := m.Options()
	return View{
		ID:           m.ID(),
		State:        m.State(),
		Placeholder:  m.Placeholder(),
		MaskPatterns: m.MaskPatterns(),
		Countries:    m.Countries(),
		TabIndex:     opts.TabIndex,
	}
}

// merge fills unset option fields from the service defaults and re-attaches
// the non-persistable function hooks.
func (s *Service) merge(opts domain.Options) domain.Options {
	if len(opts.PreferredCountries) == 0 {
		opts.PreferredCountries = s.defaults.PreferredCountries
	}
	if opts.Placeholder == "" {
		opts.Placeholder = s.defaults.Placeholder
	}
	if opts.TabIndex == 0 {
		opts.TabIndex = s.defaults.TabIndex
	}
	if opts.DisplayName == nil {
		opts.DisplayName = s.defaults.DisplayName
	}
	if opts.BoundValue == nil {
		opts.BoundValue = s.defaults.BoundValue
	}
	return opts
}
