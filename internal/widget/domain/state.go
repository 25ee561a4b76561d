// Package domain implements the phone-input widget state machine: one
// instance's state, the inbound event variants that drive it, and the
// outbound notifications it emits. Transitions are sequential per instance;
// no transition ever fails fatally; unparseable input collapses to
// valid=false and a safe display.
package domain

// State holds everything one widget instance knows. The flags are genuinely
// orthogonal (opened says nothing about dirty or valid); this is a flat
// reactive model, not an enumerated state machine.
//
// Invariant: NormalizedValue is always exactly the normalizer's output for
// (input, Country), and Valid is recomputed together with it, never alone.
type State struct {
	// RawValue is the masked/display text currently shown to the user.
	RawValue string `json:"rawValue"`
	// NormalizedValue is the canonical E.164 string when parseable, or the
	// normalizer's pass-through output otherwise.
	NormalizedValue string `json:"normalizedValue"`
	// Country is the ISO code of the current country association, or "".
	Country string `json:"country,omitempty"`
	// Valid reports whether NormalizedValue passes full validation.
	Valid bool `json:"valid"`
	// Dirty latches once any event changes the effective value away from the
	// externally-supplied initial value. Once set, bound-field recovery is
	// permanently disabled for this instance.
	Dirty bool `json:"dirty"`
	// Opened is the country-picker visibility.
	Opened bool `json:"opened"`
	// SearchTerm is the picker filter text, stored verbatim.
	SearchTerm string `json:"searchTerm,omitempty"`
	// DebounceOnBlur suppresses per-keystroke normalization until close/blur.
	DebounceOnBlur bool `json:"debounceOnBlur"`
}
