package dictload

import (
	"fmt"
	"strings"

	"langkit/internal/domain"
	"langkit/internal/domain/entities"
)

// TOML document schema, mapped one-to-one onto the entity model.

type dictionaryDoc struct {
	Name         string           `toml:"name"`
	Prefix       string           `toml:"prefix"`
	Records      []recordDoc      `toml:"record"`
	Dictionaries []dictionaryDoc  `toml:"dictionary"`
	Translations []translationDoc `toml:"translation"`
}

type recordDoc struct {
	Key    string     `toml:"key"`
	Values []valueDoc `toml:"value"`
}

type valueDoc struct {
	Locale string `toml:"locale"`
	Text   string `toml:"text"`
}

type translationDoc struct {
	Locale string `toml:"locale"`
	Title  string `toml:"title"`
	Author string `toml:"author"`
}

func toDictionary(doc dictionaryDoc) (*entities.Dictionary, error) {
	dict := entities.NewDictionary(doc.Prefix, doc.Name)

	for _, rec := range doc.Records {
		if strings.TrimSpace(rec.Key) == "" {
			return nil, fmt.Errorf("dictload: dictionary %q: %w", doc.Name, domain.ErrBlankKey)
		}
		record := entities.NewRecord(rec.Key)
		for _, val := range rec.Values {
			locale, err := entities.ParseLocale(val.Locale)
			if err != nil {
				return nil, fmt.Errorf("dictload: record %q: %w", rec.Key, err)
			}
			record.AddValue(entities.Value{Locale: locale, Text: val.Text})
		}
		dict.AddRecord(record)
	}

	for _, info := range doc.Translations {
		locale, err := entities.ParseLocale(info.Locale)
		if err != nil {
			return nil, fmt.Errorf("dictload: translation: %w", err)
		}
		dict.AddTranslation(entities.TranslationInformation{
			Locale: locale,
			Title:  info.Title,
			Author: info.Author,
		})
	}

	for _, sub := range doc.Dictionaries {
		child, err := toDictionary(sub)
		if err != nil {
			return nil, err
		}
		if err := dict.AddDictionary(child); err != nil {
			return nil, fmt.Errorf("dictload: dictionary %q: %w", sub.Name, err)
		}
	}

	return dict, nil
}
