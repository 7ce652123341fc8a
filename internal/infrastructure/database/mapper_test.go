package database

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"langkit/internal/domain"
	"langkit/internal/domain/entities"
)

func TestAssembleTree(t *testing.T) {
	dicts := []dictionaryRow{
		{ID: "root", Name: "Application", Prefix: "app"},
		{ID: "menu", ParentID: "root", Prefix: "menu", Position: 1},
		{ID: "dialog", ParentID: "root", Prefix: "dialog", Position: 0},
	}
	records := []recordRow{
		{ID: 1, DictionaryID: "root", Key: "title", Position: 0},
		{ID: 2, DictionaryID: "menu", Key: "open", Position: 0},
	}
	values := []valueRow{
		{RecordID: 1, Locale: "fr", Text: "Titre", Position: 1},
		{RecordID: 1, Locale: "en", Text: "Title", Position: 0},
		{RecordID: 2, Locale: "en", Text: "Open", Position: 0},
	}
	translations := []translationRow{
		{DictionaryID: "root", Locale: "en", Title: "English", Author: "acme"},
	}

	root, err := assembleTree("root", dicts, records, values, translations)
	if err != nil {
		t.Fatalf("assembleTree: %v", err)
	}

	wantKeys := []string{"app.menu.open", "app.title"}
	if diff := cmp.Diff(wantKeys, root.GetKeys()); diff != "" {
		t.Errorf("GetKeys() mismatch (-want +got):\n%s", diff)
	}

	// Value order restored from positions, not row order.
	rec, ok := root.GetRecord("app.title", entities.MustLocale("de"))
	if !ok {
		t.Fatal("GetRecord(app.title) not found")
	}
	if rec.Values[0].Text != "Title" || rec.Values[1].Text != "Titre" {
		t.Errorf("values = %v, want position order Title, Titre", rec.Values)
	}

	// Sibling order restored from positions.
	children := root.Dictionaries()
	if len(children) != 2 || children[0].Prefix() != "dialog" || children[1].Prefix() != "menu" {
		t.Errorf("children = %v, want dialog before menu", children)
	}

	info, ok := root.GetTranslation(entities.MustLocale("en"))
	if !ok || info.Title != "English" {
		t.Errorf("GetTranslation(en) = %+v, want the English entry", info)
	}
}

func TestAssembleTreeMissingRoot(t *testing.T) {
	_, err := assembleTree("nope", nil, nil, nil, nil)
	if !errors.Is(err, domain.ErrDictionaryNotFound) {
		t.Errorf("assembleTree = %v, want ErrDictionaryNotFound", err)
	}
}

func TestAssembleTreeRejectsBadLocale(t *testing.T) {
	dicts := []dictionaryRow{{ID: "root"}}
	records := []recordRow{{ID: 1, DictionaryID: "root", Key: "k"}}
	values := []valueRow{{RecordID: 1, Locale: "???", Text: "x"}}

	_, err := assembleTree("root", dicts, records, values, nil)
	if !errors.Is(err, domain.ErrUnknownLocale) {
		t.Errorf("assembleTree = %v, want ErrUnknownLocale", err)
	}
}
