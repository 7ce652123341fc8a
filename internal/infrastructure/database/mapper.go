package database

import (
	"fmt"
	"sort"

	"langkit/internal/domain"
	"langkit/internal/domain/entities"
)

// Row shapes mirroring the relational schema. A dictionary tree is flattened
// into these on Save and reassembled from them on Load.

type dictionaryRow struct {
	ID       string
	ParentID string
	Name     string
	Prefix   string
	Position int
}

type recordRow struct {
	ID           int64
	DictionaryID string
	Key          string
	Position     int
}

type valueRow struct {
	RecordID int64
	Locale   string
	Text     string
	Position int
}

type translationRow struct {
	DictionaryID string
	Locale       string
	Title        string
	Author       string
	Position     int
}

// assembleTree rebuilds the dictionary tree rooted at rootID from flat rows.
// Runtime dictionary IDs are freshly generated; only the tree structure and
// contents are restored. Returns domain.ErrDictionaryNotFound when rootID is
// not among the rows.
func assembleTree(rootID string, dicts []dictionaryRow, records []recordRow, values []valueRow, translations []translationRow) (*entities.Dictionary, error) {
	nodes := make(map[string]*entities.Dictionary, len(dicts))
	for _, row := range dicts {
		nodes[row.ID] = entities.NewDictionary(row.Prefix, row.Name)
	}
	root, ok := nodes[rootID]
	if !ok {
		return nil, fmt.Errorf("database: dictionary %s: %w", rootID, domain.ErrDictionaryNotFound)
	}

	valuesByRecord := make(map[int64][]valueRow)
	for _, row := range values {
		valuesByRecord[row.RecordID] = append(valuesByRecord[row.RecordID], row)
	}
	for _, rows := range valuesByRecord {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Position < records[j].Position })
	for _, row := range records {
		node, ok := nodes[row.DictionaryID]
		if !ok {
			return nil, fmt.Errorf("database: record %q references unknown dictionary %s: %w",
				row.Key, row.DictionaryID, domain.ErrDictionaryNotFound)
		}
		rec := entities.NewRecord(row.Key)
		for _, v := range valuesByRecord[row.ID] {
			locale, err := entities.ParseLocale(v.Locale)
			if err != nil {
				return nil, fmt.Errorf("database: record %q: %w", row.Key, err)
			}
			rec.AddValue(entities.Value{Locale: locale, Text: v.Text})
		}
		node.AddRecord(rec)
	}

	sort.Slice(translations, func(i, j int) bool { return translations[i].Position < translations[j].Position })
	for _, row := range translations {
		node, ok := nodes[row.DictionaryID]
		if !ok {
			continue
		}
		locale, err := entities.ParseLocale(row.Locale)
		if err != nil {
			return nil, fmt.Errorf("database: translation: %w", err)
		}
		node.AddTranslation(entities.TranslationInformation{
			Locale: locale,
			Title:  row.Title,
			Author: row.Author,
		})
	}

	// Attach children to parents, siblings in stored order.
	children := make(map[string][]dictionaryRow)
	for _, row := range dicts {
		if row.ParentID != "" {
			children[row.ParentID] = append(children[row.ParentID], row)
		}
	}
	for parentID, rows := range children {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
		parent := nodes[parentID]
		for _, row := range rows {
			if err := parent.AddDictionary(nodes[row.ID]); err != nil {
				return nil, fmt.Errorf("database: dictionary %s: %w", row.ID, err)
			}
		}
	}

	return root, nil
}
