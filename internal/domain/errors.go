package domain

import "errors"

var (
	// ErrRecordNotFound is returned when a key resolves to no record anywhere in the tree.
	ErrRecordNotFound = errors.New("langkit: record not found")

	// ErrDictionaryNotFound is returned when a stored dictionary cannot be located.
	ErrDictionaryNotFound = errors.New("langkit: dictionary not found")

	// ErrCyclicDictionary is returned when adding a child would make a dictionary its own ancestor.
	ErrCyclicDictionary = errors.New("langkit: dictionary cannot be its own ancestor")

	// ErrBlankKey is returned when a record is declared without a key.
	ErrBlankKey = errors.New("langkit: record key must not be blank")

	// ErrUnknownLocale is returned when a locale string cannot be parsed.
	ErrUnknownLocale = errors.New("langkit: unknown locale")
)
