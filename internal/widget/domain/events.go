package domain

// Event is the tagged inbound event variant consumed by the machine. Each
// variant carries its own strongly-typed payload; Machine.Apply dispatches on
// the concrete type.
type Event interface {
	isEvent()
	// Name returns the wire name of the event for logging and transport.
	Name() string
}

// Typing carries the current text of the input field after a keystroke.
type Typing struct {
	Value string
}

// SelectCountry carries the ISO code chosen in the country picker.
type SelectCountry struct {
	Country string
}

// Toggle flips country-picker visibility.
type Toggle struct{}

// Close closes the picker; when the instance debounces on blur, Value
// carries the final text to commit.
type Close struct {
	Value *string
}

// SearchCountry carries the picker filter text.
type SearchCountry struct {
	Value string
}

// Refresh applies an externally-assigned value (host form value changes).
// Silent suppresses the outward change notification for value-only updates.
// BoundValue, when non-empty, overrides the instance's configured bound-field
// hook as the recovery source for empty, not-yet-dirty instances.
type Refresh struct {
	Value      string
	BoundValue string
	Silent     bool
}

func (Typing) isEvent()        {}
func (SelectCountry) isEvent() {}
func (Toggle) isEvent()        {}
func (Close) isEvent()         {}
func (SearchCountry) isEvent() {}
func (Refresh) isEvent()       {}

func (Typing) Name() string        { return "typing" }
func (SelectCountry) Name() string { return "select_country" }
func (Toggle) Name() string        { return "toggle" }
func (Close) Name() string         { return "close" }
func (SearchCountry) Name() string { return "search-country" }
func (Refresh) Name() string       { return "refresh" }
