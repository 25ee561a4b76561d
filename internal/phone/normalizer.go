// Package phone wraps the libphonenumber port with the widget-facing
// normalization operations: validity, canonical E.164 formatting, country
// resolution, input masking and placeholder derivation. It never reimplements
// number-format grammar; all parsing and metadata comes from the library.
package phone

import (
	"strconv"
	"strings"

	"phonewidget_backend/internal/countries"
	"phonewidget_backend/platform/apperr"

	"github.com/nyaruka/phonenumbers"
)

const (
	// placeholderFiller replaces every digit of an example number when
	// deriving a placeholder.
	placeholderFiller = '5'
	// maskRune replaces digits when deriving mask patterns.
	maskRune = 'X'
)

// exampleTypes lists the number-type categories probed for example numbers,
// in metadata-table order.
var exampleTypes = []phonenumbers.PhoneNumberType{
	phonenumbers.FIXED_LINE,
	phonenumbers.MOBILE,
	phonenumbers.FIXED_LINE_OR_MOBILE,
	phonenumbers.TOLL_FREE,
	phonenumbers.PREMIUM_RATE,
	phonenumbers.SHARED_COST,
	phonenumbers.VOIP,
	phonenumbers.PERSONAL_NUMBER,
	phonenumbers.PAGER,
	phonenumbers.UAN,
	phonenumbers.VOICEMAIL,
}

// Normalizer performs all phone-number computations for the widget. It is
// stateless apart from the injected registry and safe for shared use.
type Normalizer struct {
	reg *countries.Registry
}

// New creates a Normalizer backed by the given country registry.
func New(reg *countries.Registry) *Normalizer {
	return &Normalizer{reg: reg}
}

// IsValid reports whether text parses and passes full number-plan validity.
// Empty or garbage input is false; syntactic shape alone is not enough.
func (n *Normalizer) IsValid(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	num, err := phonenumbers.Parse(trimmed, "")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// ResolveCountry determines the issuing country for text via a three-stage
// fallback: a fully valid parse mapped to its region; else, for "+"-prefixed
// input, a dial-code prefix probe against the registry; else failure.
//
// The dial-code probe resolves shared codes ("1") to a single table-order
// match. That is a documented simplification, not a geographic inference.
func (n *Normalizer) ResolveCountry(text string) (countries.Country, error) {
	trimmed := strings.TrimSpace(text)

	if trimmed != "" {
		if num, err := phonenumbers.Parse(trimmed, ""); err == nil && phonenumbers.IsValidNumber(num) {
			if region := phonenumbers.GetRegionCodeForNumber(num); region != "" {
				if country, err := n.reg.GetByCode(region); err == nil {
					return country, nil
				}
			}
		}
	}

	if strings.HasPrefix(trimmed, "+") {
		digits := digitsOnly(trimmed[1:])
		// ITU dial codes are 1-3 digits and prefix-free; probe longest first.
		for l := 3; l >= 1; l-- {
			if l > len(digits) {
				continue
			}
			if country, err := n.reg.GetByRegionCode(digits[:l]); err == nil {
				return country, nil
			}
		}
	}

	return countries.Country{}, apperr.InvalidNumber("cannot resolve a country from input")
}

// Normalize strips everything except digits and a leading "+", parses with
// the optional country hint and returns the E.164 form. On failure it returns
// the original text unchanged together with a typed error; callers must
// distinguish success by the error, not by string shape.
func (n *Normalizer) Normalize(text, countryHint string) (string, error) {
	clean := sanitize(text)

	num, err := phonenumbers.Parse(clean, countryHint)
	if err != nil {
		return text, apperr.Wrap(apperr.KindInvalidNumber, "unparseable phone number", err)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// ApplyInputMask reduces text to the national significant digits for display:
// no dial code, no punctuation. Empty input passes through unchanged; on
// parse failure the display collapses to "" rather than showing stale text.
func (n *Normalizer) ApplyInputMask(text, country string) string {
	if text == "" {
		return ""
	}

	num, err := phonenumbers.Parse(text, country)
	if err != nil {
		return ""
	}
	return phonenumbers.GetNationalSignificantNumber(num)
}

// PlaceholderFor derives the input placeholder for a country from its
// fixed-line example number: every digit becomes the filler digit, the result
// is re-parsed under the country and formatted internationally, and the dial
// prefix is stripped. Returns "" when no example number is available.
func (n *Normalizer) PlaceholderFor(country string) string {
	example := phonenumbers.GetExampleNumberForType(country, phonenumbers.FIXED_LINE)
	if example == nil {
		return ""
	}

	national := phonenumbers.GetNationalSignificantNumber(example)
	filled := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return placeholderFiller
		}
		return r
	}, national)

	num, err := phonenumbers.Parse(filled, country)
	if err != nil {
		return ""
	}

	formatted := phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	return stripDialPrefix(formatted, phonenumbers.GetCountryCodeForRegion(country))
}

// MaskPatternsFor returns the unique input masks for a country, one per
// number-type category carrying an example number, in metadata order. Digits
// become the mask rune; duplicates collapse regardless of source category.
func (n *Normalizer) MaskPatternsFor(country string) []string {
	dial := phonenumbers.GetCountryCodeForRegion(country)

	seen := make(map[string]bool)
	var masks []string

	for _, typ := range exampleTypes {
		example := phonenumbers.GetExampleNumberForType(country, typ)
		if example == nil {
			continue
		}

		formatted := phonenumbers.Format(example, phonenumbers.INTERNATIONAL)
		mask := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return maskRune
			}
			return r
		}, stripDialPrefix(formatted, dial))

		mask = strings.TrimSpace(mask)
		if mask == "" || seen[mask] {
			continue
		}
		seen[mask] = true
		masks = append(masks, mask)
	}

	return masks
}

// stripDialPrefix removes a leading "+cc" or "00cc" dial-code prefix and
// surrounding whitespace.
func stripDialPrefix(s string, dialCode int) string {
	s = strings.TrimSpace(s)
	if dialCode > 0 {
		cc := strconv.Itoa(dialCode)
		for _, prefix := range []string{"+" + cc, "00" + cc} {
			if strings.HasPrefix(s, prefix) {
				return strings.TrimSpace(strings.TrimPrefix(s, prefix))
			}
		}
	}
	return s
}

// sanitize keeps digits and a leading "+" only.
func sanitize(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	for i, r := range text {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
