// Package countries provides the country reference table used by the phone
// input widget: ISO codes, display names, international dial codes and flag
// glyphs, with preferred-first listing and picker filtering.
package countries

import "strings"

// Country is an immutable country table entry. Code is the unique key;
// RegionCode (the international dial code) is NOT unique; NANP members all
// share "1". Preferred is an overlay computed per listing, not intrinsic data.
type Country struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionCode string `json:"regionCode"`
	FlagEmoji  string `json:"flagEmoji"`
	Preferred  bool   `json:"preferred"`
}

// Equal reports whether two countries refer to the same table entry.
func (c Country) Equal(other Country) bool {
	return c.Code == other.Code
}

// regionalIndicatorOffset maps 'A'..'Z' onto the Unicode regional indicator
// symbols U+1F1E6..U+1F1FF.
const regionalIndicatorOffset = 0x1F1E6 - 'A'

// FlagOverrides remaps ISO codes to a different flag before the mechanical
// regional-indicator derivation. The IL entry is a deliberate product policy,
// not a technical requirement; callers that do not want it can delete or
// replace entries before building a registry.
var FlagOverrides = map[string]string{
	"IL": "PS",
}

// FlagEmoji derives the emoji flag for a two-letter ISO code by mapping each
// letter to its Unicode regional indicator symbol. It returns "" for input
// that is not two ASCII letters. No check is made that the resulting pair is
// a real flag.
func FlagEmoji(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return ""
	}

	if mapped, ok := FlagOverrides[code]; ok {
		code = mapped
	}

	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(r + regionalIndicatorOffset)
	}
	return b.String()
}
