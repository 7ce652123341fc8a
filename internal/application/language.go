package application

import (
	"sync"

	"langkit/internal/domain/entities"
	"langkit/internal/ports/input"
)

// Ensure LanguageService implements the input.Language use case.
var _ input.Language = (*LanguageService)(nil)

// LocaleListener is notified after the service switches its current locale.
type LocaleListener func(old, new entities.Locale)

// LanguageService is the resolution manager: it merges installed dictionary
// bundles under one root store, tracks the current locale and resolves
// display text with the store's locale-fallback semantics.
type LanguageService struct {
	mu        sync.Mutex
	root      *entities.Dictionary
	locale    entities.Locale
	listeners []LocaleListener
}

// NewLanguageService creates a service resolving against an empty root
// dictionary with the given current locale.
func NewLanguageService(locale entities.Locale) *LanguageService {
	return &LanguageService{
		root:   entities.NewDictionary("", "root"),
		locale: locale,
	}
}

// Root exposes the merged root dictionary.
func (s *LanguageService) Root() *entities.Dictionary {
	return s.root
}

// AddDictionary installs a dictionary bundle under the root store.
func (s *LanguageService) AddDictionary(dict *entities.Dictionary) error {
	return s.root.AddDictionary(dict)
}

// RemoveDictionary uninstalls a previously added bundle.
func (s *LanguageService) RemoveDictionary(dict *entities.Dictionary) {
	s.root.RemoveDictionary(dict)
}

// Locale returns the current locale.
func (s *LanguageService) Locale() entities.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// SetLocale switches the current locale and notifies listeners. Setting the
// locale already in effect is a no-op.
func (s *LanguageService) SetLocale(locale entities.Locale) {
	s.mu.Lock()
	if s.locale == locale {
		s.mu.Unlock()
		return
	}
	old := s.locale
	s.locale = locale
	listeners := make([]LocaleListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	// Listeners run outside the lock so they may call back into the service.
	for _, listener := range listeners {
		listener(old, locale)
	}
}

// AddListener registers a locale-change listener.
func (s *LanguageService) AddListener(listener LocaleListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Text resolves key for the current locale, falling back to the key itself
// when no translation exists.
func (s *LanguageService) Text(key string) string {
	return s.TextIn(key, s.Locale())
}

// TextIn resolves key for an explicit locale, falling back to the key
// itself when no translation exists.
func (s *LanguageService) TextIn(key string, locale entities.Locale) string {
	if text, ok := s.Lookup(key, locale); ok {
		return text
	}
	return key
}

// Lookup resolves key for an explicit locale against the root store.
func (s *LanguageService) Lookup(key string, locale entities.Locale) (string, bool) {
	rec, ok := s.root.GetRecord(key, locale)
	if !ok {
		return "", false
	}
	value, ok := rec.Value(locale)
	if !ok {
		return "", false
	}
	return value.Text, true
}

// AllLocales returns every locale present anywhere under the root store.
func (s *LanguageService) AllLocales() []entities.Locale {
	return s.root.GetAllLocales()
}

// SupportedLocales returns the locales covered by every key under the root
// store.
func (s *LanguageService) SupportedLocales() []entities.Locale {
	return s.root.GetSupportedLocales()
}

// Translation returns the translation metadata best fitting the locale.
func (s *LanguageService) Translation(locale entities.Locale) (entities.TranslationInformation, bool) {
	return s.root.GetTranslation(locale)
}
