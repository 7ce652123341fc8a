package entities

// TranslationInformation describes one translation available in a
// dictionary: its locale, a display title and the source it came from.
type TranslationInformation struct {
	Locale Locale
	Title  string
	Author string
}

func (t TranslationInformation) String() string {
	return t.Locale.String() + " (" + t.Title + ")"
}
