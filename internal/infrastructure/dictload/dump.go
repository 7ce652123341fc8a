package dictload

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"langkit/internal/domain/entities"
)

// Dump writes the dictionary tree to w in the TOML schema understood by
// Load.
func Dump(w io.Writer, dict *entities.Dictionary) error {
	data, err := toml.Marshal(fromDictionary(dict))
	if err != nil {
		return fmt.Errorf("dictload: marshal: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("dictload: write: %w", err)
	}
	return nil
}

func fromDictionary(dict *entities.Dictionary) dictionaryDoc {
	doc := dictionaryDoc{
		Name:   dict.Name(),
		Prefix: dict.Prefix(),
	}
	for _, rec := range dict.Records() {
		recDoc := recordDoc{Key: rec.Key}
		for _, v := range rec.Values {
			recDoc.Values = append(recDoc.Values, valueDoc{Locale: v.Locale.String(), Text: v.Text})
		}
		doc.Records = append(doc.Records, recDoc)
	}
	for _, info := range dict.Translations() {
		doc.Translations = append(doc.Translations, translationDoc{
			Locale: info.Locale.String(),
			Title:  info.Title,
			Author: info.Author,
		})
	}
	for _, child := range dict.Dictionaries() {
		doc.Dictionaries = append(doc.Dictionaries, fromDictionary(child))
	}
	return doc
}
