package domain

import (
	"testing"

	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/phone"
	"phonewidget_backend/platform/events"
)

func newMachine(t *testing.T, opts Options) *Machine {
	t.Helper()
	reg := countries.NewRegistry()
	return New("w-1", reg, phone.New(reg), opts)
}

func notificationNames(list []events.Event) []string {
	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.EventName())
	}
	return names
}

func hasNotification(list []events.Event, name string) bool {
	for _, e := range list {
		if e.EventName() == name {
			return true
		}
	}
	return false
}

func TestNew_InitialState(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"NL", "US"}})

	state := m.State()
	if state.RawValue != "" || state.NormalizedValue != "" {
		t.Fatalf("expected empty values, got %+v", state)
	}
	if state.Country != "NL" {
		t.Fatalf("expected first preferred country NL, got %s", state.Country)
	}
	if state.Valid || state.Dirty || state.Opened {
		t.Fatalf("expected cleared flags, got %+v", state)
	}
}

func TestNew_DefaultPreferredCountries(t *testing.T) {
	m := newMachine(t, Options{})
	if m.State().Country != DefaultPreferredCountries[0] {
		t.Fatalf("expected default initial country, got %s", m.State().Country)
	}
}

func TestNew_InitialValueNormalizedNotDirty(t *testing.T) {
	m := newMachine(t, Options{
		PreferredCountries: []string{"US"},
		InitialValue:       "+1 (650) 253-0000",
		ApplyMask:          true,
	})

	state := m.State()
	if state.NormalizedValue != "+16502530000" || !state.Valid {
		t.Fatalf("expected initial value normalized, got %+v", state)
	}
	if state.Dirty {
		t.Fatalf("dirty must measure changes against the initial value")
	}

	// The same value arriving again is not a change.
	if out := m.Apply(Refresh{Value: "+16502530000"}); len(out) != 0 {
		t.Fatalf("expected no notifications, got %v", notificationNames(out))
	}
	if m.State().Dirty {
		t.Fatalf("unchanged refresh must not latch dirty")
	}
}

func TestTyping_FullPipeline(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}, ApplyMask: true})

	out := m.Apply(Typing{Value: "+1 (650) 253-0000"})

	state := m.State()
	if state.NormalizedValue != "+16502530000" {
		t.Fatalf("expected E.164 value, got %q", state.NormalizedValue)
	}
	if !state.Valid {
		t.Fatalf("expected valid state")
	}
	if state.RawValue != "6502530000" {
		t.Fatalf("expected masked display, got %q", state.RawValue)
	}
	if !state.Dirty {
		t.Fatalf("expected dirty latch set")
	}
	if !hasNotification(out, EventChanged) {
		t.Fatalf("expected change notification, got %v", notificationNames(out))
	}
}

func TestTyping_InvalidInputStaysRenderable(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})

	m.Apply(Typing{Value: "junk"})

	state := m.State()
	if state.Valid {
		t.Fatalf("expected invalid state")
	}
	if state.RawValue != "junk" {
		t.Fatalf("expected pass-through display without mask, got %q", state.RawValue)
	}
}

func TestTyping_DebounceDefersNormalization(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}, DebounceOnBlur: true})

	var all []events.Event
	for _, keys := range []string{"+1", "+1650", "+16502530000"} {
		all = append(all, m.Apply(Typing{Value: keys})...)
	}

	state := m.State()
	if len(all) != 0 {
		t.Fatalf("expected no notifications while debouncing, got %v", notificationNames(all))
	}
	if state.NormalizedValue != "" || state.Valid {
		t.Fatalf("expected deferred normalization, got %+v", state)
	}
	if state.RawValue != "+16502530000" {
		t.Fatalf("expected displayed text to track keystrokes, got %q", state.RawValue)
	}

	final := "+16502530000"
	out := m.Apply(Close{Value: &final})

	state = m.State()
	if state.NormalizedValue != "+16502530000" || !state.Valid {
		t.Fatalf("expected close to commit deferred value, got %+v", state)
	}
	if !hasNotification(out, EventChanged) {
		t.Fatalf("expected change notification on close, got %v", notificationNames(out))
	}
	if state.Opened {
		t.Fatalf("expected picker closed")
	}
}

func TestClose_WithoutValueOnlyCloses(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}, Opened: true, DebounceOnBlur: true})

	out := m.Apply(Close{})
	if len(out) != 0 {
		t.Fatalf("expected no notifications, got %v", notificationNames(out))
	}
	if m.State().Opened {
		t.Fatalf("expected picker closed")
	}
}

func TestSelectCountry_ReprocessesValueAndRequestsFocus(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})
	m.Apply(Typing{Value: "6502530000"})

	out := m.Apply(SelectCountry{Country: "NL"})

	state := m.State()
	if state.Country != "NL" {
		t.Fatalf("expected NL, got %s", state.Country)
	}
	if state.Opened {
		t.Fatalf("expected picker closed after selection")
	}
	if state.NormalizedValue != "+316502530000" {
		t.Fatalf("expected re-normalization under NL, got %q", state.NormalizedValue)
	}
	if !hasNotification(out, EventFocus) {
		t.Fatalf("expected focus request, got %v", notificationNames(out))
	}
}

func TestSelectCountry_EmptyValueStillRequestsFocus(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})

	out := m.Apply(SelectCountry{Country: "NL"})

	if !hasNotification(out, EventFocus) {
		t.Fatalf("expected focus request even for empty value, got %v", notificationNames(out))
	}
	if hasNotification(out, EventChanged) {
		t.Fatalf("unexpected change notification for empty value")
	}
}

func TestToggle(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})

	out := m.Apply(Toggle{})
	if !m.State().Opened {
		t.Fatalf("expected picker opened")
	}
	if !hasNotification(out, EventSearchFocus) {
		t.Fatalf("expected search focus request, got %v", notificationNames(out))
	}

	out = m.Apply(Toggle{})
	if m.State().Opened {
		t.Fatalf("expected picker closed")
	}
	if len(out) != 0 {
		t.Fatalf("expected no notification when closing, got %v", notificationNames(out))
	}
}

func TestSearchCountry_FiltersPickerOnly(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})
	before := m.State()

	out := m.Apply(SearchCountry{Value: "nether"})
	if len(out) != 0 {
		t.Fatalf("expected no notifications, got %v", notificationNames(out))
	}

	state := m.State()
	if state.SearchTerm != "nether" {
		t.Fatalf("expected search term stored verbatim, got %q", state.SearchTerm)
	}
	if state.NormalizedValue != before.NormalizedValue || state.Country != before.Country {
		t.Fatalf("search must not touch value or country")
	}

	list := m.Countries()
	if len(list) == 0 {
		t.Fatalf("expected filtered picker list")
	}
	for _, c := range list {
		if c.Code == "US" {
			t.Fatalf("expected US filtered out by term")
		}
	}
}

func TestRefresh_SilentSuppressesNotification(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})

	out := m.Apply(Refresh{Value: "+16502530000", Silent: true})
	if len(out) != 0 {
		t.Fatalf("expected silent refresh, got %v", notificationNames(out))
	}
	if m.State().NormalizedValue != "+16502530000" {
		t.Fatalf("expected value applied, got %q", m.State().NormalizedValue)
	}
}

func TestRefresh_UnchangedValueEmitsNothing(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}})
	m.Apply(Refresh{Value: "+16502530000", Silent: true})

	out := m.Apply(Refresh{Value: "+16502530000"})
	if len(out) != 0 {
		t.Fatalf("expected no notification for unchanged value, got %v", notificationNames(out))
	}
}

func TestRefresh_RecoversBoundValueAndInfersCountry(t *testing.T) {
	reg := countries.NewRegistry()
	m := New("w-1", reg, phone.New(reg), Options{
		PreferredCountries: []string{"US"},
		BoundValue:         func() string { return "+31612345678" },
	})

	out := m.Apply(Refresh{})

	state := m.State()
	if state.Country != "NL" {
		t.Fatalf("expected country inferred from bound value, got %s", state.Country)
	}
	if state.NormalizedValue != "+31612345678" {
		t.Fatalf("expected recovered value, got %q", state.NormalizedValue)
	}
	if !hasNotification(out, EventChanged) {
		t.Fatalf("expected change notification, got %v", notificationNames(out))
	}
}

func TestRefresh_DirtyDisablesRecovery(t *testing.T) {
	reg := countries.NewRegistry()
	m := New("w-1", reg, phone.New(reg), Options{
		PreferredCountries: []string{"US"},
		BoundValue:         func() string { return "+31612345678" },
	})

	// Typing makes the instance dirty.
	m.Apply(Typing{Value: "+16502530000"})

	m.Apply(Refresh{})

	state := m.State()
	if state.Country != "US" {
		t.Fatalf("expected country untouched, got %s", state.Country)
	}
	if state.NormalizedValue == "+31612345678" {
		t.Fatalf("expected bound-field recovery disabled once dirty")
	}
}

func TestRefresh_NonEmptyIncomingSkipsRecovery(t *testing.T) {
	reg := countries.NewRegistry()
	m := New("w-1", reg, phone.New(reg), Options{
		PreferredCountries: []string{"US"},
		BoundValue:         func() string { return "+31612345678" },
	})

	m.Apply(Refresh{Value: "+16502530000"})

	state := m.State()
	if state.Country != "US" {
		t.Fatalf("expected incoming value used verbatim with current country, got %s", state.Country)
	}
	if state.NormalizedValue != "+16502530000" {
		t.Fatalf("expected incoming value, got %q", state.NormalizedValue)
	}
}

func TestPlaceholder_OverrideWins(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"US"}, Placeholder: "custom"})
	if got := m.Placeholder(); got != "custom" {
		t.Fatalf("expected custom placeholder, got %q", got)
	}

	m = newMachine(t, Options{PreferredCountries: []string{"US"}})
	if got := m.Placeholder(); got == "" {
		t.Fatalf("expected derived placeholder")
	}
}

func TestCountries_PreferredPinned(t *testing.T) {
	m := newMachine(t, Options{PreferredCountries: []string{"NL", "US"}})

	list := m.Countries()
	if list[0].Code != "NL" || list[1].Code != "US" {
		t.Fatalf("expected NL,US pinned first, got %s,%s", list[0].Code, list[1].Code)
	}
}
