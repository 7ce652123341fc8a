package output

import (
	"context"

	"langkit/internal/domain/entities"
)

// DictionaryRepository persists and restores dictionary trees.
type DictionaryRepository interface {
	// Save stores the whole tree rooted at dict, replacing any previously
	// stored tree with the same ID.
	Save(ctx context.Context, dict *entities.Dictionary) error

	// Load rebuilds the tree rooted at the dictionary with the given ID.
	Load(ctx context.Context, id string) (*entities.Dictionary, error)

	// LoadByName rebuilds the most recently saved root dictionary carrying
	// the given name.
	LoadByName(ctx context.Context, name string) (*entities.Dictionary, error)
}
