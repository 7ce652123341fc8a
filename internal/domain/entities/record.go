package entities

import "fmt"

// Value is one localized string bound to a single Locale.
type Value struct {
	Locale Locale
	Text   string
}

// Record is a locale-partitioned translation unit: a key local to its
// dictionary plus the values available for it. Records are shared by
// reference; dictionaries never copy them.
type Record struct {
	Key    string
	Values []Value
}

// NewRecord creates a Record for the given local key.
func NewRecord(key string, values ...Value) *Record {
	return &Record{Key: key, Values: values}
}

// AddValue appends a localized value to the record.
func (r *Record) AddValue(v Value) {
	r.Values = append(r.Values, v)
}

// Value returns the value that best fits the target locale, preferring
// exact matches over country matches over language-only matches, with
// insertion order breaking ties.
func (r *Record) Value(target Locale) (Value, bool) {
	best := -1
	var found Value
	for _, v := range r.Values {
		if fit := v.Locale.Fit(target); fit > best {
			best = fit
			found = v
		}
	}
	return found, best >= 0
}

// LocaleFit returns the best fit score any of the record's values achieves
// for the target locale.
func (r *Record) LocaleFit(target Locale) int {
	fit := 0
	for _, v := range r.Values {
		if f := v.Locale.Fit(target); f > fit {
			fit = f
		}
	}
	return fit
}

// Locales returns the locales of all values in insertion order. Duplicates
// are preserved.
func (r *Record) Locales() []Locale {
	locales := make([]Locale, 0, len(r.Values))
	for _, v := range r.Values {
		locales = append(locales, v.Locale)
	}
	return locales
}

func (r *Record) String() string {
	return fmt.Sprintf("%s [V:%d]", r.Key, len(r.Values))
}
