// Package transport defines the HTTP payloads of the widget event contract.
package transport

import (
	"phonewidget_backend/internal/countries"
	"phonewidget_backend/internal/widget/domain"
	"phonewidget_backend/platform/apperr"
)

// CreateWidgetRequest configures a new widget instance. Absent pointer
// fields fall back to the server-wide defaults.
type CreateWidgetRequest struct {
	PreferredCountries []string `json:"preferredCountries" validate:"omitempty,max=10,dive,iso3166_1_alpha2"`
	TabIndex           int      `json:"tabIndex" validate:"omitempty,min=0"`
	ApplyMask          *bool    `json:"applyMask"`
	InitialValue       string   `json:"initialValue" validate:"omitempty,max=32"`
	Opened             bool     `json:"opened"`
	DebounceOnBlur     *bool    `json:"debounceOnBlur"`
	Dirty              bool     `json:"dirty"`
	SearchTerm         string   `json:"searchTerm" validate:"omitempty,max=64"`
	Placeholder        string   `json:"placeholder" validate:"omitempty,max=64"`
}

// Options converts the request into widget options, resolving absent flags
// against the given defaults.
func (r CreateWidgetRequest) Options(applyMask, debounceOnBlur bool) domain.Options {
	if r.ApplyMask != nil {
		applyMask = *r.ApplyMask
	}
	if r.DebounceOnBlur != nil {
		debounceOnBlur = *r.DebounceOnBlur
	}

	return domain.Options{
		PreferredCountries: r.PreferredCountries,
		TabIndex:           r.TabIndex,
		ApplyMask:          applyMask,
		InitialValue:       r.InitialValue,
		Opened:             r.Opened,
		DebounceOnBlur:     debounceOnBlur,
		Dirty:              r.Dirty,
		SearchTerm:         r.SearchTerm,
		Placeholder:        r.Placeholder,
	}
}

// EventRequest is one inbound widget event on the wire.
type EventRequest struct {
	Type       string  `json:"type" validate:"required,oneof=typing select_country toggle close search-country refresh"`
	Value      *string `json:"value" validate:"omitempty,max=64"`
	Country    string  `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	BoundValue string  `json:"boundValue" validate:"omitempty,max=64"`
	Silent     bool    `json:"silent"`
}

// ToEvent converts the wire payload into the machine's event variant,
// enforcing each variant's required fields.
func (r EventRequest) ToEvent() (domain.Event, error) {
	switch r.Type {
	case "typing":
		if r.Value == nil {
			return nil, apperr.Validation("typing requires a value")
		}
		return domain.Typing{Value: *r.Value}, nil
	case "select_country":
		if r.Country == "" {
			return nil, apperr.Validation("select_country requires a country")
		}
		return domain.SelectCountry{Country: r.Country}, nil
	case "toggle":
		return domain.Toggle{}, nil
	case "close":
		return domain.Close{Value: r.Value}, nil
	case "search-country":
		if r.Value == nil {
			return nil, apperr.Validation("search-country requires a value")
		}
		return domain.SearchCountry{Value: *r.Value}, nil
	case "refresh":
		var value string
		if r.Value != nil {
			value = *r.Value
		}
		return domain.Refresh{Value: value, BoundValue: r.BoundValue, Silent: r.Silent}, nil
	default:
		return nil, apperr.Validation("unknown event type " + r.Type)
	}
}

// CountryResponse is one picker entry.
type CountryResponse struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionCode string `json:"regionCode"`
	FlagEmoji  string `json:"flagEmoji"`
	Preferred  bool   `json:"preferred"`
}

// ToCountryResponses maps registry entries to the wire shape.
func ToCountryResponses(list []countries.Country) []CountryResponse {
	out := make([]CountryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CountryResponse{
			Code:       c.Code,
			Name:       c.Name,
			RegionCode: c.RegionCode,
			FlagEmoji:  c.FlagEmoji,
			Preferred:  c.Preferred,
		})
	}
	return out
}

// ListCountriesResponse is the country listing payload.
type ListCountriesResponse struct {
	Countries []CountryResponse `json:"countries"`
}
