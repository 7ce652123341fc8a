package entities

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"langkit/internal/domain"
)

// Locale identifies a translation target as a language/country/variant tuple,
// e.g. {en}, {en US} or {de DE bavarian}. The zero value matches nothing.
type Locale struct {
	Language string
	Country  string
	Variant  string
}

// ParseLocale parses locale strings such as "en", "en_US", "en-US" or
// "de_DE_bavarian". Language and country codes are normalized through
// golang.org/x/text/language; the variant is kept verbatim in lower case.
func ParseLocale(s string) (Locale, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locale{}, fmt.Errorf("%w: empty string", domain.ErrUnknownLocale)
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' })
	if len(parts) > 3 {
		return Locale{}, fmt.Errorf("%w: %q", domain.ErrUnknownLocale, s)
	}

	base, err := language.ParseBase(parts[0])
	if err != nil {
		return Locale{}, fmt.Errorf("%w: %q: %v", domain.ErrUnknownLocale, s, err)
	}
	locale := Locale{Language: base.String()}

	if len(parts) > 1 {
		region, err := language.ParseRegion(parts[1])
		if err != nil {
			return Locale{}, fmt.Errorf("%w: %q: %v", domain.ErrUnknownLocale, s, err)
		}
		locale.Country = region.String()
	}
	if len(parts) > 2 {
		locale.Variant = strings.ToLower(parts[2])
	}
	return locale, nil
}

// MustLocale is ParseLocale for statically known locale strings; it panics on
// malformed input.
func MustLocale(s string) Locale {
	locale, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return locale
}

// Fit scores how well this locale serves the target. Exact
// language+country+variant scores highest, then language+country, then a
// generic language-only locale, then a language match with the wrong
// country; an unrelated language scores 0. A generic "en" outranks "en_US"
// for an "en_GB" target, while any language match outranks "fr".
func (l Locale) Fit(target Locale) int {
	if l.Language == "" || l.Language != target.Language {
		return 0
	}
	if l.Country != target.Country {
		if l.Country == "" {
			return 2
		}
		return 1
	}
	if l.Variant != target.Variant {
		if l.Variant == "" {
			return 4
		}
		return 3
	}
	return 5
}

// DisplayLanguage returns the English name of the locale's language
// ("French" for fr_CA), falling back to the raw code.
func (l Locale) DisplayLanguage() string {
	base, err := language.ParseBase(l.Language)
	if err != nil {
		return l.Language
	}
	if name := display.English.Languages().Name(base); name != "" {
		return name
	}
	return l.Language
}

// String renders the locale in lang[_COUNTRY[_variant]] form.
func (l Locale) String() string {
	var b strings.Builder
	b.WriteString(l.Language)
	if l.Country != "" {
		b.WriteByte('_')
		b.WriteString(l.Country)
	}
	if l.Variant != "" {
		b.WriteByte('_')
		b.WriteString(l.Variant)
	}
	return b.String()
}
