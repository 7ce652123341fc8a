package entities

import (
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"langkit/internal/domain"
	"langkit/pkg/ident"
)

// dictionaryIDPrefix tags dictionary identifiers.
const dictionaryIDPrefix = "DIC"

// syntheticAuthor marks translation metadata generated from record locales
// when a dictionary carries no explicit translation block.
const syntheticAuthor = "langkit"

// Dictionary is a node in a tree of translation containers. It holds
// locale-partitioned Records, child Dictionaries and optional translation
// metadata, and resolves fully-qualified keys against the whole subtree
// with per-node caching.
//
// Every method serializes access through the instance's own lock. A lookup
// recursing into children acquires each child's lock independently, so a
// tree-wide lookup is not atomic with respect to concurrent mutation of
// other nodes.
type Dictionary struct {
	mu sync.Mutex

	id     string
	name   string
	prefix string

	records      []*Record
	children     []*Dictionary
	translations []TranslationInformation

	// Lazy caches, torn down on structural mutation. recordCache stores nil
	// for a confirmed miss so repeated lookups of an absent key stay cheap.
	recordCache      map[string]*Record
	childCache       map[string]*Dictionary
	allLocales       []Locale
	supportedLocales []Locale
}

// NewDictionary creates an empty dictionary. The prefix, when non-blank, is
// prepended (dot-joined) to every key this dictionary and its subtree
// resolve; the name is an optional display label.
func NewDictionary(prefix, name string) *Dictionary {
	return &Dictionary{
		id:     ident.New(dictionaryIDPrefix),
		prefix: prefix,
		name:   name,
	}
}

// ID returns the process-unique identifier assigned at construction.
func (d *Dictionary) ID() string {
	return d.id
}

// Name returns the dictionary's display label, if any.
func (d *Dictionary) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// SetName sets the dictionary's display label.
func (d *Dictionary) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

// Prefix returns the dictionary's key prefix, if any.
func (d *Dictionary) Prefix() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prefix
}

// SetPrefix sets the dictionary's key prefix. Existing cached resolutions
// are discarded since every key in the subtree changes namespace.
func (d *Dictionary) SetPrefix(prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prefix = prefix
	d.recordCache = nil
	d.childCache = nil
	d.clearLocaleCachesLocked()
}

// usablePrefixLocked returns the effective lookup prefix: prefix + "." when
// the prefix is non-blank, otherwise "".
func (d *Dictionary) usablePrefixLocked() string {
	if strings.TrimSpace(d.prefix) != "" {
		return d.prefix + "."
	}
	return ""
}

// RecordsCount returns the number of records in this dictionary only.
func (d *Dictionary) RecordsCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

// TotalRecordsCount returns the number of records in this dictionary and
// all child dictionaries.
func (d *Dictionary) TotalRecordsCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := len(d.records)
	for _, child := range d.children {
		count += child.TotalRecordsCount()
	}
	return count
}

// Records returns a copy of this dictionary's record list.
func (d *Dictionary) Records() []*Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.records)
}

// DictionariesCount returns the number of direct child dictionaries.
func (d *Dictionary) DictionariesCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.children)
}

// Dictionaries returns a copy of this dictionary's child list.
func (d *Dictionary) Dictionaries() []*Dictionary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.children)
}

// GetRecord resolves the single most locale-fitting record for a
// fully-qualified key, searching this dictionary and all descendants.
// A key outside this dictionary's prefix namespace, or one with no record
// anywhere in the subtree, yields ok == false.
func (d *Dictionary) GetRecord(key string, locale Locale) (*Record, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cacheKey := key + "." + locale.String()
	if rec, hit := d.recordCache[cacheKey]; hit {
		return rec, rec != nil
	}

	prefix := d.usablePrefixLocked()
	if !strings.HasPrefix(key, prefix) {
		// Not our namespace. Deliberately not cached: re-checking the
		// prefix is cheaper than an entry per foreign key.
		return nil, false
	}
	subKey := key[len(prefix):]

	if child, hit := d.childCache[cacheKey]; hit {
		return child.GetRecord(subKey, locale)
	}

	var best *Record
	source := d
	for _, rec := range d.records {
		if rec.Key != subKey {
			continue
		}
		if best == nil || rec.LocaleFit(locale) > best.LocaleFit(locale) {
			best = rec
		}
	}
	for _, child := range d.children {
		rec, found := child.GetRecord(subKey, locale)
		if !found {
			continue
		}
		if best == nil || rec.LocaleFit(locale) > best.LocaleFit(locale) {
			best = rec
			source = child
		}
	}

	if source == d {
		if d.recordCache == nil {
			d.recordCache = make(map[string]*Record)
		}
		d.recordCache[cacheKey] = best
	} else {
		// Remember which child owns the key so the next lookup skips the
		// sibling scan entirely.
		if d.childCache == nil {
			d.childCache = make(map[string]*Dictionary)
		}
		d.childCache[cacheKey] = source
	}
	return best, best != nil
}

// recordsForKey collects every record for the fully-qualified key across
// the subtree, regardless of locale.
func (d *Dictionary) recordsForKey(key string, out []*Record) []*Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recordsForKeyLocked(key, out)
}

func (d *Dictionary) recordsForKeyLocked(key string, out []*Record) []*Record {
	prefix := d.usablePrefixLocked()
	if !strings.HasPrefix(key, prefix) {
		return out
	}
	subKey := key[len(prefix):]
	for _, rec := range d.records {
		if rec.Key == subKey {
			out = append(out, rec)
		}
	}
	for _, child := range d.children {
		out = child.recordsForKey(subKey, out)
	}
	return out
}

// AddRecord adds a record to this dictionary and returns it.
func (d *Dictionary) AddRecord(rec *Record) *Record {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, rec)
	d.invalidateRecordLocked(rec)
	return rec
}

// RemoveRecord removes the given record instance from this dictionary.
func (d *Dictionary) RemoveRecord(rec *Record) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.records {
		if existing == rec {
			d.records = slices.Delete(d.records, i, i+1)
			d.invalidateRecordLocked(rec)
			return
		}
	}
}

// RemoveRecordByKey removes the first record carrying the given local key.
func (d *Dictionary) RemoveRecordByKey(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, rec := range d.records {
		if rec.Key == key {
			d.records = slices.Delete(d.records, i, i+1)
			d.invalidateRecordLocked(rec)
			return
		}
	}
}

// ClearRecords removes every record from this dictionary and discards the
// whole record cache.
func (d *Dictionary) ClearRecords() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.records == nil {
		return
	}
	d.records = nil
	d.recordCache = nil
	d.clearLocaleCachesLocked()
}

// invalidateRecordLocked prunes cached resolutions affected by a mutation
// of rec and resets locale aggregation caches. Cache keys are fully
// qualified, so the record's key is matched under this dictionary's
// effective prefix; unrelated entries survive.
func (d *Dictionary) invalidateRecordLocked(rec *Record) {
	d.clearLocaleCachesLocked()
	if d.recordCache == nil && d.childCache == nil {
		return
	}
	keys := map[string]struct{}{d.usablePrefixLocked() + rec.Key: {}}
	pruneKeys(d.recordCache, keys)
	pruneKeys(d.childCache, keys)
}

// AddDictionary adds a child dictionary. It refuses a child that already
// contains this dictionary, keeping the tree acyclic.
func (d *Dictionary) AddDictionary(child *Dictionary) error {
	if child == d || child.contains(d) {
		return domain.ErrCyclicDictionary
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.children = append(d.children, child)
	d.invalidateDictionaryLocked(child)
	return nil
}

// RemoveDictionary removes the given child dictionary.
func (d *Dictionary) RemoveDictionary(child *Dictionary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.children {
		if existing == child {
			d.children = slices.Delete(d.children, i, i+1)
			d.invalidateDictionaryLocked(child)
			return
		}
	}
}

// ClearDictionaries removes every child dictionary and discards the whole
// child cache.
func (d *Dictionary) ClearDictionaries() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.children == nil {
		return
	}
	d.children = nil
	d.childCache = nil
	d.clearLocaleCachesLocked()
}

// contains reports whether other is this dictionary or one of its
// descendants.
func (d *Dictionary) contains(other *Dictionary) bool {
	if d == other {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, child := range d.children {
		if child.contains(other) {
			return true
		}
	}
	return false
}

// invalidateDictionaryLocked prunes cached resolutions that fall within the
// child's key space: every fully-qualified key the child can resolve,
// prefixed by this dictionary's own effective prefix.
func (d *Dictionary) invalidateDictionaryLocked(child *Dictionary) {
	d.clearLocaleCachesLocked()
	if d.recordCache == nil && d.childCache == nil {
		return
	}
	keys := make(map[string]struct{})
	child.collectKeys(d.usablePrefixLocked(), keys)
	pruneKeys(d.recordCache, keys)
	pruneKeys(d.childCache, keys)
}

func (d *Dictionary) clearLocaleCachesLocked() {
	d.allLocales = nil
	d.supportedLocales = nil
}

// pruneKeys drops cache entries whose key starts with any of the given
// fully-qualified keys.
func pruneKeys[V any](cache map[string]V, keys map[string]struct{}) {
	for cached := range cache {
		for key := range keys {
			if strings.HasPrefix(cached, key) {
				delete(cache, cached)
				break
			}
		}
	}
}

// GetKeys returns the sorted set of fully-qualified keys resolvable through
// this dictionary, including every descendant's records.
func (d *Dictionary) GetKeys() []string {
	set := make(map[string]struct{})
	d.collectKeys("", set)
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (d *Dictionary) collectKeys(prefix string, keys map[string]struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.collectKeysLocked(prefix, keys)
}

func (d *Dictionary) collectKeysLocked(prefix string, keys map[string]struct{}) {
	p := prefix + d.usablePrefixLocked()
	for _, rec := range d.records {
		keys[p+rec.Key] = struct{}{}
	}
	for _, child := range d.children {
		child.collectKeys(p, keys)
	}
}

// Translations returns a copy of this dictionary's explicit translation
// metadata.
func (d *Dictionary) Translations() []TranslationInformation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.translations)
}

// AddTranslation adds explicit translation metadata to this dictionary.
func (d *Dictionary) AddTranslation(info TranslationInformation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.translations = append(d.translations, info)
}

// GetTranslation returns the translation metadata that best fits the target
// locale, searching explicit metadata across the subtree first. When none
// matches the target's language, metadata is synthesized from the first
// locale-bearing record found in the subtree, on the assumption that locale
// coverage is uniform across the tree. ok is false only when the subtree
// carries neither metadata nor any locale-bearing record.
func (d *Dictionary) GetTranslation(locale Locale) (TranslationInformation, bool) {
	candidates := d.collectTranslations(locale, nil)
	if len(candidates) == 0 {
		for _, lc := range d.firstLocales(nil) {
			candidates = append(candidates, TranslationInformation{
				Locale: lc,
				Title:  lc.DisplayLanguage(),
				Author: syntheticAuthor,
			})
		}
	}

	best := -1
	var found TranslationInformation
	for _, info := range candidates {
		if fit := info.Locale.Fit(locale); fit > best {
			best = fit
			found = info
		}
	}
	return found, best >= 0
}

// collectTranslations gathers explicit metadata across the subtree whose
// locale shares the target's language code.
func (d *Dictionary) collectTranslations(locale Locale, out []TranslationInformation) []TranslationInformation {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, info := range d.translations {
		if info.Locale.Language == locale.Language {
			out = append(out, info)
		}
	}
	for _, child := range d.children {
		out = child.collectTranslations(locale, out)
	}
	return out
}

// firstLocales returns the locales of the first locale-bearing record in
// the subtree, stopping at the first dictionary that yields any.
func (d *Dictionary) firstLocales(out []Locale) []Locale {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, rec := range d.records {
		if len(rec.Values) > 0 {
			for _, v := range rec.Values {
				out = append(out, v.Locale)
			}
			return out
		}
	}
	for _, child := range d.children {
		if out = child.firstLocales(out); len(out) > 0 {
			return out
		}
	}
	return out
}

// GetAllLocales returns every locale appearing on any value in the subtree,
// records before child dictionaries, depth-first. The result is memoized
// until the next structural mutation of this node. Duplicates are
// preserved: two records carrying an "en" value contribute "en" twice.
func (d *Dictionary) GetAllLocales() []Locale {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.allLocales == nil {
		d.allLocales = d.appendAllLocalesLocked(make([]Locale, 0))
	}
	return slices.Clone(d.allLocales)
}

func (d *Dictionary) appendAllLocales(out []Locale) []Locale {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.appendAllLocalesLocked(out)
}

func (d *Dictionary) appendAllLocalesLocked(out []Locale) []Locale {
	for _, rec := range d.records {
		out = append(out, rec.Locales()...)
	}
	for _, child := range d.children {
		out = child.appendAllLocales(out)
	}
	return out
}

// GetSupportedLocales returns the subset of GetAllLocales whose language
// code is covered by every distinct key in the subtree. A locale is not
// supported when any key lacks a value in its language, which keeps a
// mostly-untranslated language from being advertised.
func (d *Dictionary) GetSupportedLocales() []Locale {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.supportedLocales == nil {
		if d.allLocales == nil {
			d.allLocales = d.appendAllLocalesLocked(make([]Locale, 0))
		}

		keys := make(map[string]struct{})
		d.collectKeysLocked("", keys)

		var supported map[string]struct{}
		for key := range keys {
			codes := make(map[string]struct{})
			for _, rec := range d.recordsForKeyLocked(key, nil) {
				for _, v := range rec.Values {
					codes[v.Locale.Language] = struct{}{}
				}
			}
			if supported == nil {
				supported = codes
				continue
			}
			for code := range supported {
				if _, ok := codes[code]; !ok {
					delete(supported, code)
				}
			}
		}

		d.supportedLocales = make([]Locale, 0, len(d.allLocales))
		for _, lc := range d.allLocales {
			if _, ok := supported[lc.Language]; ok {
				d.supportedLocales = append(d.supportedLocales, lc)
			}
		}
	}
	return slices.Clone(d.supportedLocales)
}

// Equal reports identity equality: two Dictionary values are the same
// dictionary only when they share the construction-time ID.
func (d *Dictionary) Equal(other *Dictionary) bool {
	return other != nil && d.id == other.id
}

func (d *Dictionary) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if d.name != "" {
		b.WriteString(d.name)
	}
	if d.prefix != "" {
		b.WriteString(" [")
		b.WriteString(d.prefix)
		b.WriteByte(']')
	}
	if len(d.records) > 0 {
		b.WriteString(" [R:")
		b.WriteString(strconv.Itoa(len(d.records)))
		b.WriteByte(']')
	}
	if len(d.children) > 0 {
		b.WriteString(" [D:")
		b.WriteString(strconv.Itoa(len(d.children)))
		b.WriteByte(']')
	}
	return strings.TrimSpace(b.String())
}
