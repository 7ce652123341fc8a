package application_test

import (
	"testing"

	"langkit/internal/application"
	"langkit/internal/domain/entities"
)

type bundleRecord struct {
	key     string
	locales []string
}

// bundle builds a dictionary from records in the given order. Order matters:
// translation synthesis reads the first locale-bearing record.
func bundle(prefix string, recs []bundleRecord) *entities.Dictionary {
	dict := entities.NewDictionary(prefix, "")
	for _, br := range recs {
		rec := entities.NewRecord(br.key)
		for _, lc := range br.locales {
			rec.AddValue(entities.Value{Locale: entities.MustLocale(lc), Text: br.key + "/" + lc})
		}
		dict.AddRecord(rec)
	}
	return dict
}

func TestTextResolvesCurrentLocale(t *testing.T) {
	svc := application.NewLanguageService(entities.MustLocale("fr"))
	if err := svc.AddDictionary(bundle("app", []bundleRecord{
		{key: "title", locales: []string{"en", "fr"}},
	})); err != nil {
		t.Fatal(err)
	}

	if got := svc.Text("app.title"); got != "title/fr" {
		t.Errorf("Text(app.title) = %q, want title/fr", got)
	}
	if got := svc.TextIn("app.title", entities.MustLocale("en")); got != "title/en" {
		t.Errorf("TextIn(app.title, en) = %q, want title/en", got)
	}
}

func TestTextFallsBackToKey(t *testing.T) {
	svc := application.NewLanguageService(entities.MustLocale("en"))
	if got := svc.Text("missing.key"); got != "missing.key" {
		t.Errorf("Text(missing.key) = %q, want the key itself", got)
	}
	if _, ok := svc.Lookup("missing.key", entities.MustLocale("en")); ok {
		t.Error("Lookup(missing.key) reported ok")
	}
}

func TestSetLocaleNotifiesListeners(t *testing.T) {
	svc := application.NewLanguageService(entities.MustLocale("en"))

	var gotOld, gotNew entities.Locale
	calls := 0
	svc.AddListener(func(old, new entities.Locale) {
		gotOld, gotNew = old, new
		calls++
	})

	fr := entities.MustLocale("fr")
	svc.SetLocale(fr)
	if calls != 1 || gotOld != entities.MustLocale("en") || gotNew != fr {
		t.Errorf("listener got (%v, %v) after %d calls, want (en, fr) once", gotOld, gotNew, calls)
	}
	if svc.Locale() != fr {
		t.Errorf("Locale() = %v, want fr", svc.Locale())
	}

	// Setting the same locale again is a no-op.
	svc.SetLocale(fr)
	if calls != 1 {
		t.Errorf("listener called %d times after redundant SetLocale, want 1", calls)
	}
}

func TestRemoveDictionary(t *testing.T) {
	svc := application.NewLanguageService(entities.MustLocale("en"))
	dict := bundle("app", []bundleRecord{{key: "title", locales: []string{"en"}}})
	if err := svc.AddDictionary(dict); err != nil {
		t.Fatal(err)
	}
	if got := svc.Text("app.title"); got != "title/en" {
		t.Fatalf("Text(app.title) = %q before removal", got)
	}

	svc.RemoveDictionary(dict)
	if got := svc.Text("app.title"); got != "app.title" {
		t.Errorf("Text(app.title) = %q after removal, want the key itself", got)
	}
}

func TestLocaleAggregationDelegation(t *testing.T) {
	svc := application.NewLanguageService(entities.MustLocale("en"))
	// k1 first: synthesis reads the first locale-bearing record, so the
	// candidates must include fr regardless of run-to-run conditions.
	if err := svc.AddDictionary(bundle("a", []bundleRecord{
		{key: "k1", locales: []string{"en", "fr"}},
		{key: "k2", locales: []string{"en"}},
	})); err != nil {
		t.Fatal(err)
	}

	if len(svc.AllLocales()) != 3 {
		t.Errorf("AllLocales() = %v, want 3 entries", svc.AllLocales())
	}
	for _, lc := range svc.SupportedLocales() {
		if lc.Language != "en" {
			t.Errorf("SupportedLocales() contains %v", lc)
		}
	}

	info, ok := svc.Translation(entities.MustLocale("fr"))
	if !ok || info.Locale.Language != "fr" {
		t.Errorf("Translation(fr) = (%+v, %v), want synthesized fr entry", info, ok)
	}
}
