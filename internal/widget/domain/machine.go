package domain

import (
	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/phone"
	"phonewidget_backend/platform/events"
)

// Machine owns one widget instance's state and applies inbound events to it.
// A machine is exclusively owned by its instance: events are delivered one at
// a time by the hosting runtime, so no locking is needed here.
type Machine struct {
	id    string
	reg   *countries.Registry
	norm  *phone.Normalizer
	opts  Options
	state State
}

// New creates a machine in the initial state: the first preferred country
// selected, flags seeded from the options, the configured initial value
// normalized without notifying anyone. The dirty latch measures changes
// against that initial value, so it is re-seeded after the value is applied.
func New(id string, reg *countries.Registry, norm *phone.Normalizer, opts Options) *Machine {
	m := &Machine{
		id:   id,
		reg:  reg,
		norm: norm,
		opts: opts,
		state: State{
			Country:        opts.initialCountry(),
			Valid:          opts.Valid,
			Opened:         opts.Opened,
			SearchTerm:     opts.SearchTerm,
			DebounceOnBlur: opts.DebounceOnBlur,
		},
	}

	if opts.InitialValue != "" {
		m.process(opts.InitialValue, true)
	}
	m.state.Dirty = opts.Dirty

	return m
}

// Restore rebuilds a machine around previously persisted state.
func Restore(id string, reg *countries.Registry, norm *phone.Normalizer, opts Options, state State) *Machine {
	return &Machine{id: id, reg: reg, norm: norm, opts: opts, state: state}
}

// ID returns the instance id.
func (m *Machine) ID() string { return m.id }

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Options returns the instance configuration.
func (m *Machine) Options() Options { return m.opts }

// Apply runs one transition and returns the ordered outbound notifications
// to publish. It never returns an error: unparseable input yields
// valid=false and a pass-through or emptied display, leaving the state
// renderable.
func (m *Machine) Apply(ev Event) []events.Event {
	switch ev := ev.(type) {
	case Refresh:
		return m.refresh(ev)
	case Typing:
		return m.typing(ev.Value)
	case SelectCountry:
		return m.selectCountry(ev.Country)
	case Toggle:
		return m.toggle()
	case Close:
		return m.close(ev.Value)
	case SearchCountry:
		m.state.SearchTerm = ev.Value
		return nil
	default:
		return nil
	}
}

// refresh applies an externally-assigned value. An empty incoming value on a
// not-yet-dirty instance attempts recovery from the bound external form
// field, inferring the country from the recovered value when possible.
func (m *Machine) refresh(ev Refresh) []events.Event {
	incoming := ev.Value

	if incoming == "" && !m.state.Dirty {
		if recovered := m.boundValue(ev.BoundValue); recovered != "" {
			incoming = recovered
			if country, err := m.norm.ResolveCountry(recovered); err == nil {
				m.state.Country = country.Code
			}
		}
	}

	return m.process(incoming, ev.Silent)
}

func (m *Machine) boundValue(override string) string {
	if override != "" {
		return override
	}
	if m.opts.BoundValue != nil {
		return m.opts.BoundValue()
	}
	return ""
}

// typing handles a keystroke. With DebounceOnBlur only the displayed text
// updates; normalization, validity and notifications wait for close.
func (m *Machine) typing(value string) []events.Event {
	if m.state.DebounceOnBlur {
		m.state.RawValue = value
		return nil
	}
	return m.process(value, false)
}

// selectCountry switches the country association, closes the picker and, if
// a value exists, re-runs the pipeline under the new country. The host is
// always asked to refocus the text input, even for an empty value.
func (m *Machine) selectCountry(code string) []events.Event {
	m.state.Country = code
	m.state.Opened = false
	m.state.Valid = m.norm.IsValid(m.state.NormalizedValue)

	var out []events.Event
	if m.state.RawValue != "" || m.state.NormalizedValue != "" {
		out = m.process(m.state.RawValue, false)
	}
	return append(out, newFocusRequested(m.id))
}

func (m *Machine) toggle() []events.Event {
	m.state.Opened = !m.state.Opened
	if m.state.Opened {
		return []events.Event{newSearchFocusRequested()}
	}
	return nil
}

// close commits the deferred value when debouncing and always closes the
// picker.
func (m *Machine) close(finalValue *string) []events.Event {
	var out []events.Event
	if m.state.DebounceOnBlur && finalValue != nil {
		out = m.process(*finalValue, false)
	}
	m.state.Opened = false
	return out
}

// process is the full normalize pipeline shared by refresh, typing,
// selectCountry and close: recompute NormalizedValue, Valid and RawValue
// together and latch Dirty on change. A change notification is emitted
// unless the caller requested a silent update.
func (m *Machine) process(text string, silent bool) []events.Event {
	prev := m.state.NormalizedValue

	normalized, err := m.norm.Normalize(text, m.state.Country)
	if err != nil {
		// Pass-through per the normalizer contract; validity below decides
		// what the user sees.
		normalized = text
	}

	m.state.NormalizedValue = normalized
	m.state.Valid = m.norm.IsValid(normalized)

	if m.opts.ApplyMask {
		m.state.RawValue = m.norm.ApplyInputMask(text, m.state.Country)
	} else {
		m.state.RawValue = text
	}

	if normalized == prev {
		return nil
	}

	m.state.Dirty = true
	if silent {
		return nil
	}
	return []events.Event{newChanged(m.id, normalized)}
}

// Placeholder returns the configured placeholder override or the derived
// per-country placeholder.
func (m *Machine) Placeholder() string {
	if m.opts.Placeholder != "" {
		return m.opts.Placeholder
	}
	return m.norm.PlaceholderFor(m.state.Country)
}

// MaskPatterns returns the unique input masks for the current country.
func (m *Machine) MaskPatterns() []string {
	return m.norm.MaskPatternsFor(m.state.Country)
}

// Countries returns the picker list: preferred countries pinned first,
// filtered by the current search term.
func (m *Machine) Countries() []countries.Country {
	list := m.reg.List(m.opts.preferred())
	return m.reg.Filter(list, m.state.SearchTerm, m.opts.DisplayName)
}
