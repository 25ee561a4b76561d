package domain

import "phonewidget_backend/internal/countries"

// DefaultPreferredCountries is used when no preferred list is configured.
var DefaultPreferredCountries = []string{"US", "GB"}

// Options is the per-instance configuration supplied at construction. Every
// field is independently defaulted; the zero value is usable.
type Options struct {
	// PreferredCountries pins countries to the front of the picker and
	// supplies the initial country (its first entry).
	PreferredCountries []string `json:"preferredCountries,omitempty"`
	// TabIndex is passed through to the rendered input element.
	TabIndex int `json:"tabIndex,omitempty"`
	// ApplyMask enables formatting the display text via the input mask.
	ApplyMask bool `json:"applyMask"`
	// InitialValue is the externally-supplied starting value.
	InitialValue string `json:"initialValue,omitempty"`
	// Opened opens the country picker initially.
	Opened bool `json:"opened,omitempty"`
	// Valid seeds the validity flag before the first normalization runs.
	Valid bool `json:"valid,omitempty"`
	// DebounceOnBlur defers normalization and outward notifications from
	// each keystroke to the following close/blur.
	DebounceOnBlur bool `json:"debounceOnBlur,omitempty"`
	// Dirty seeds the dirty latch (a host re-creating an instance mid-edit
	// passes the previous latch along).
	Dirty bool `json:"dirty,omitempty"`
	// SearchTerm seeds the picker filter.
	SearchTerm string `json:"searchTerm,omitempty"`
	// Placeholder overrides the derived per-country placeholder when set.
	Placeholder string `json:"placeholder,omitempty"`

	// DisplayName supplies localized country names for picker filtering.
	// Not persisted; hosts re-attach it after restoring an instance.
	DisplayName func(countries.Country) string `json:"-"`
	// BoundValue reads the bound external form field used for initial-value
	// recovery. Not persisted.
	BoundValue func() string `json:"-"`
}

func (o Options) preferred() []string {
	if len(o.PreferredCountries) == 0 {
		return DefaultPreferredCountries
	}
	return o.PreferredCountries
}

func (o Options) initialCountry() string {
	return o.preferred()[0]
}
