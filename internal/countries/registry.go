package countries

import (
	"sort"
	"strconv"
	"strings"

	"phonewidget_backend/platform/apperr"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Registry is the immutable country lookup table. It is built once from the
// phone metadata library's supported regions and may be shared freely between
// widget instances.
type Registry struct {
	table      []Country
	byCode     map[string]int
	byDialCode map[string]int
}

// NewRegistry builds the canonical country table: every supported region with
// a known dial code, named in English, ordered alphabetically by ISO code.
// The alphabetical order is the canonical table order referenced by dial-code
// tie-breaking.
func NewRegistry() *Registry {
	regions := phonenumbers.GetSupportedRegions()
	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	namer := display.English.Regions()

	r := &Registry{
		table:      make([]Country, 0, len(codes)),
		byCode:     make(map[string]int, len(codes)),
		byDialCode: make(map[string]int),
	}

	for _, code := range codes {
		dial := phonenumbers.GetCountryCodeForRegion(code)
		if dial == 0 {
			continue
		}

		name := code
		if region, err := language.ParseRegion(code); err == nil {
			if n := namer.Name(region); n != "" {
				name = n
			}
		}

		country := Country{
			Code:       code,
			Name:       name,
			RegionCode: strconv.Itoa(dial),
			FlagEmoji:  FlagEmoji(code),
		}

		r.byCode[code] = len(r.table)
		// First table entry wins for shared dial codes ("1" resolves to the
		// alphabetically-first NANP member, not a geographic inference).
		if _, exists := r.byDialCode[country.RegionCode]; !exists {
			r.byDialCode[country.RegionCode] = len(r.table)
		}
		r.table = append(r.table, country)
	}

	return r
}

// List returns all countries with the preferred overlay applied: countries
// named in preferredCodes come first, in the given order, followed by the
// remaining countries in canonical table order. Unknown preferred codes are
// skipped.
func (r *Registry) List(preferredCodes []string) []Country {
	out := make([]Country, 0, len(r.table))
	preferred := make(map[string]bool, len(preferredCodes))

	for _, code := range preferredCodes {
		idx, ok := r.byCode[strings.ToUpper(code)]
		if !ok || preferred[r.table[idx].Code] {
			continue
		}
		preferred[r.table[idx].Code] = true
		c := r.table[idx]
		c.Preferred = true
		out = append(out, c)
	}

	for _, c := range r.table {
		if !preferred[c.Code] {
			out = append(out, c)
		}
	}

	return out
}

// GetByCode looks up a country by its ISO 3166-1 alpha-2 code.
func (r *Registry) GetByCode(code string) (Country, error) {
	idx, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Country{}, apperr.CountryNotFound("unknown country code " + code)
	}
	return r.table[idx], nil
}

// GetByRegionCode looks up a country by its international dial-code digits.
// Dial codes are shared ("1" covers the whole NANP); the first country in
// canonical table order wins.
func (r *Registry) GetByRegionCode(digits string) (Country, error) {
	idx, ok := r.byDialCode[digits]
	if !ok {
		return Country{}, apperr.CountryNotFound("no country with dial code " + digits)
	}
	return r.table[idx], nil
}

// Filter returns the subsequence of list matching term. The term is
// lower-cased and a leading "+" is stripped; a country matches when its name,
// code, dial code or caller-supplied display name contains the term. An empty
// term returns list unchanged. displayNameFn may be nil.
func (r *Registry) Filter(list []Country, term string, displayNameFn func(Country) string) []Country {
	term = strings.ToLower(strings.TrimSpace(term))
	term = strings.TrimPrefix(term, "+")
	if term == "" {
		return list
	}

	out := make([]Country, 0, len(list))
	for _, c := range list {
		if matches(c, term, displayNameFn) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c Country, term string, displayNameFn func(Country) string) bool {
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Code), term) {
		return true
	}
	if strings.Contains(c.RegionCode, term) {
		return true
	}
	if displayNameFn != nil && strings.Contains(strings.ToLower(displayNameFn(c)), term) {
		return true
	}
	return false
}

// Len returns the number of countries in the canonical table.
func (r *Registry) Len() int {
	return len(r.table)
}
