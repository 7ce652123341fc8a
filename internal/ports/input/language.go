package input

import "langkit/internal/domain/entities"

// Language is the resolution-manager surface surrounding components depend
// on: display-text lookup against a root dictionary plus the locale
// aggregation queries driving locale-selection UI.
type Language interface {
	// Text resolves key for the current locale, returning the key itself
	// when no translation exists.
	Text(key string) string

	// TextIn resolves key for an explicit locale, returning the key itself
	// when no translation exists.
	TextIn(key string, locale entities.Locale) string

	// Lookup resolves key for an explicit locale, reporting whether a
	// translation was found.
	Lookup(key string, locale entities.Locale) (string, bool)

	Locale() entities.Locale
	SetLocale(locale entities.Locale)

	AllLocales() []entities.Locale
	SupportedLocales() []entities.Locale
	Translation(locale entities.Locale) (entities.TranslationInformation, bool)
}
