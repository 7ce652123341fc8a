package main

import (
	"context"
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"langkit/internal/application"
	"langkit/internal/config"
	"langkit/internal/domain"
	"langkit/internal/domain/entities"
	"langkit/internal/infrastructure/database"
	"langkit/internal/infrastructure/dictload"
)

const usage = `Usage: langkit <command> [flags]

Commands:
  validate    load a dictionary file and report its shape
  keys        list every fully-qualified key
  locales     list all locales (--supported for covered ones only)
  translate   resolve a key (--locale overrides DEFAULT_LOCALE)
  import      store a dictionary file in PostgreSQL
  export      write a stored dictionary back out as TOML

Common flags:
  --file      dictionary file (default: DICTIONARY_PATH)
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("langkit: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "validate":
		err = runValidate(cfg, args)
	case "keys":
		err = runKeys(cfg, args)
	case "locales":
		err = runLocales(cfg, args)
	case "translate":
		err = runTranslate(cfg, args)
	case "import":
		err = runImport(cfg, args)
	case "export":
		err = runExport(cfg, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Printf("langkit: %v", err)
		os.Exit(1)
	}
}

func loadDictionary(cfg *config.Config, file string) (*entities.Dictionary, error) {
	if file == "" {
		file = cfg.DictionaryPath
	}
	if file == "" {
		return nil, fmt.Errorf("no dictionary file: pass --file or set DICTIONARY_PATH")
	}
	return dictload.LoadFile(file)
}

func runValidate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	file := fs.String("file", "", "dictionary file")
	fs.Parse(args)

	dict, err := loadDictionary(cfg, *file)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", dict)
	fmt.Printf("records: %d (total %d), keys: %d, dictionaries: %d\n",
		dict.RecordsCount(), dict.TotalRecordsCount(), len(dict.GetKeys()), dict.DictionariesCount())
	return nil
}

func runKeys(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("keys", flag.ExitOnError)
	file := fs.String("file", "", "dictionary file")
	fs.Parse(args)

	dict, err := loadDictionary(cfg, *file)
	if err != nil {
		return err
	}
	for _, key := range dict.GetKeys() {
		fmt.Println(key)
	}
	return nil
}

func runLocales(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("locales", flag.ExitOnError)
	file := fs.String("file", "", "dictionary file")
	supported := fs.Bool("supported", false, "only locales covered by every key")
	fs.Parse(args)

	dict, err := loadDictionary(cfg, *file)
	if err != nil {
		return err
	}
	locales := dict.GetAllLocales()
	if *supported {
		locales = dict.GetSupportedLocales()
	}
	seen := make(map[entities.Locale]struct{})
	for _, lc := range locales {
		if _, dup := seen[lc]; dup {
			continue
		}
		seen[lc] = struct{}{}
		fmt.Printf("%s\t%s\n", lc, lc.DisplayLanguage())
	}
	return nil
}

func runTranslate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("translate", flag.ExitOnError)
	file := fs.String("file", "", "dictionary file")
	rawLocale := fs.String("locale", "", "target locale (default: DEFAULT_LOCALE)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("translate: expected exactly one key argument")
	}
	key := fs.Arg(0)

	locale := cfg.DefaultLocale
	if *rawLocale != "" {
		var err error
		if locale, err = entities.ParseLocale(*rawLocale); err != nil {
			return err
		}
	}

	dict, err := loadDictionary(cfg, *file)
	if err != nil {
		return err
	}

	svc := application.NewLanguageService(locale)
	if err := svc.AddDictionary(dict); err != nil {
		return err
	}
	text, ok := svc.Lookup(key, locale)
	if !ok {
		return fmt.Errorf("%q (%s): %w", key, locale, domain.ErrRecordNotFound)
	}
	fmt.Println(text)
	return nil
}

func runImport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "dictionary file")
	fs.Parse(args)

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("import: DATABASE_URL is required")
	}
	dict, err := loadDictionary(cfg, *file)
	if err != nil {
		return err
	}

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := database.NewDictionaryRepository(pool)
	if err := repo.Save(ctx, dict); err != nil {
		return err
	}
	fmt.Println(dict.ID())
	return nil
}

func runExport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	id := fs.String("id", "", "stored dictionary ID")
	name := fs.String("name", "", "stored root dictionary name")
	fs.Parse(args)

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("export: DATABASE_URL is required")
	}
	if *id == "" && *name == "" {
		return fmt.Errorf("export: pass --id or --name")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := database.NewDictionaryRepository(pool)
	var dict *entities.Dictionary
	if *id != "" {
		dict, err = repo.Load(ctx, *id)
	} else {
		dict, err = repo.LoadByName(ctx, *name)
	}
	if err != nil {
		return err
	}
	return dictload.Dump(os.Stdout, dict)
}
