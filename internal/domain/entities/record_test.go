package entities_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"langkit/internal/domain/entities"
)

func value(locale, text string) entities.Value {
	return entities.Value{Locale: entities.MustLocale(locale), Text: text}
}

func TestRecordValueBestFit(t *testing.T) {
	rec := entities.NewRecord("title",
		value("en_US", "Color"),
		value("en", "Colour or Color"),
		value("fr", "Couleur"),
	)

	tests := []struct {
		target string
		want   string
	}{
		{"en_US", "Color"},
		{"en_GB", "Colour or Color"}, // generic en beats wrong-country en_US
		{"en", "Colour or Color"},
		{"fr_FR", "Couleur"},
	}
	for _, tt := range tests {
		got, ok := rec.Value(entities.MustLocale(tt.target))
		if !ok {
			t.Fatalf("Value(%s): not found", tt.target)
		}
		if got.Text != tt.want {
			t.Errorf("Value(%s).Text = %q, want %q", tt.target, got.Text, tt.want)
		}
	}
}

func TestRecordValueInsertionOrderBreaksTies(t *testing.T) {
	rec := entities.NewRecord("k",
		value("en_US", "first"),
		value("en_CA", "second"),
	)
	got, ok := rec.Value(entities.MustLocale("en_GB"))
	if !ok || got.Text != "first" {
		t.Errorf("Value(en_GB) = %q, %v; want %q (first inserted wins ties)", got.Text, ok, "first")
	}
}

func TestRecordValueAbsentWhenEmpty(t *testing.T) {
	rec := entities.NewRecord("k")
	if _, ok := rec.Value(entities.MustLocale("en")); ok {
		t.Error("Value on empty record reported ok")
	}
}

func TestRecordLocalesPreservesDuplicates(t *testing.T) {
	rec := entities.NewRecord("k", value("en", "a"), value("fr", "b"), value("en", "c"))
	want := []entities.Locale{
		entities.MustLocale("en"),
		entities.MustLocale("fr"),
		entities.MustLocale("en"),
	}
	if diff := cmp.Diff(want, rec.Locales()); diff != "" {
		t.Errorf("Locales() mismatch (-want +got):\n%s", diff)
	}
}
