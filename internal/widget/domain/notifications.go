package domain

import "phonewidget_backend/platform/events"

// Outbound notification names on the event bus.
const (
	EventChanged     = "widget.change"
	EventFocus       = "widget.focus"
	EventSearchFocus = "widget.countrysearchfocus"
)

// Changed signals that the canonical normalized value changed.
type Changed struct {
	events.BaseEvent
	WidgetID string `json:"id"`
	Value    string `json:"value"`
}

// EventName implements events.Event.
func (Changed) EventName() string { return EventChanged }

// FocusRequested asks the host to return keyboard focus to the text field.
type FocusRequested struct {
	events.BaseEvent
	WidgetID string `json:"id"`
}

// EventName implements events.Event.
func (FocusRequested) EventName() string { return EventFocus }

// SearchFocusRequested asks the host to focus the picker's search field.
// It carries no payload; it is a broadcast, not addressed to an instance.
type SearchFocusRequested struct {
	events.BaseEvent
}

// EventName implements events.Event.
func (SearchFocusRequested) EventName() string { return EventSearchFocus }

func newChanged(id, value string) Changed {
	return Changed{BaseEvent: events.NewBaseEvent(), WidgetID: id, Value: value}
}

func newFocusRequested(id string) FocusRequested {
	return FocusRequested{BaseEvent: events.NewBaseEvent(), WidgetID: id}
}

func newSearchFocusRequested() SearchFocusRequested {
	return SearchFocusRequested{BaseEvent: events.NewBaseEvent()}
}
