package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"langkit/internal/domain"
	"langkit/internal/domain/entities"
	"langkit/internal/ports/output"
)

var _ output.DictionaryRepository = (*DictionaryRepository)(nil)

// DictionaryRepository stores dictionary trees relationally: one row per
// dictionary linked to its parent, plus rows for records, values and
// translation metadata.
type DictionaryRepository struct {
	pool *pgxpool.Pool
}

func NewDictionaryRepository(pool *pgxpool.Pool) *DictionaryRepository {
	return &DictionaryRepository{pool: pool}
}

// Save stores the whole tree rooted at dict inside one transaction,
// replacing any previously stored tree with the same ID.
func (r *DictionaryRepository) Save(ctx context.Context, dict *entities.Dictionary) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save dictionary: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM dictionaries WHERE id = $1`, dict.ID()); err != nil {
		return fmt.Errorf("save dictionary: clear previous: %w", err)
	}
	if err := r.saveNode(ctx, tx, dict, "", 0); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save dictionary: commit: %w", err)
	}
	return nil
}

func (r *DictionaryRepository) saveNode(ctx context.Context, tx pgx.Tx, dict *entities.Dictionary, parentID string, position int) error {
	var parent any
	if parentID != "" {
		parent = parentID
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO dictionaries (id, parent_id, name, prefix, position) VALUES ($1, $2, $3, $4, $5)`,
		dict.ID(), parent, dict.Name(), dict.Prefix(), position)
	if err != nil {
		return fmt.Errorf("save dictionary %s: %w", dict.ID(), err)
	}

	for i, rec := range dict.Records() {
		var recID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO dictionary_records (dictionary_id, key, position) VALUES ($1, $2, $3) RETURNING id`,
			dict.ID(), rec.Key, i).Scan(&recID)
		if err != nil {
			return fmt.Errorf("save record %q: %w", rec.Key, err)
		}
		for j, v := range rec.Values {
			_, err := tx.Exec(ctx,
				`INSERT INTO record_values (record_id, locale, text, position) VALUES ($1, $2, $3, $4)`,
				recID, v.Locale.String(), v.Text, j)
			if err != nil {
				return fmt.Errorf("save value %q/%s: %w", rec.Key, v.Locale, err)
			}
		}
	}

	for i, info := range dict.Translations() {
		_, err := tx.Exec(ctx,
			`INSERT INTO dictionary_translations (dictionary_id, locale, title, author, position) VALUES ($1, $2, $3, $4, $5)`,
			dict.ID(), info.Locale.String(), info.Title, info.Author, i)
		if err != nil {
			return fmt.Errorf("save translation %s: %w", info.Locale, err)
		}
	}

	for i, child := range dict.Dictionaries() {
		if err := r.saveNode(ctx, tx, child, dict.ID(), i); err != nil {
			return err
		}
	}
	return nil
}

// Load rebuilds the tree rooted at the dictionary with the given stored ID.
func (r *DictionaryRepository) Load(ctx context.Context, id string) (*entities.Dictionary, error) {
	rows, err := r.pool.Query(ctx, `
		WITH RECURSIVE tree AS (
			SELECT id, parent_id, name, prefix, position
			FROM dictionaries WHERE id = $1
			UNION ALL
			SELECT d.id, d.parent_id, d.name, d.prefix, d.position
			FROM dictionaries d JOIN tree t ON d.parent_id = t.id
		)
		SELECT id, COALESCE(parent_id, ''), name, prefix, position FROM tree`, id)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", id, err)
	}
	dicts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dictionaryRow, error) {
		var d dictionaryRow
		err := row.Scan(&d.ID, &d.ParentID, &d.Name, &d.Prefix, &d.Position)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", id, err)
	}

	ids := make([]string, 0, len(dicts))
	for _, d := range dicts {
		ids = append(ids, d.ID)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT id, dictionary_id, key, position FROM dictionary_records WHERE dictionary_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load records for %s: %w", id, err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (recordRow, error) {
		var rec recordRow
		err := row.Scan(&rec.ID, &rec.DictionaryID, &rec.Key, &rec.Position)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("load records for %s: %w", id, err)
	}

	rows, err = r.pool.Query(ctx, `
		SELECT v.record_id, v.locale, v.text, v.position
		FROM record_values v
		JOIN dictionary_records rec ON v.record_id = rec.id
		WHERE rec.dictionary_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load values for %s: %w", id, err)
	}
	values, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (valueRow, error) {
		var v valueRow
		err := row.Scan(&v.RecordID, &v.Locale, &v.Text, &v.Position)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("load values for %s: %w", id, err)
	}

	rows, err = r.pool.Query(ctx,
		`SELECT dictionary_id, locale, title, author, position FROM dictionary_translations WHERE dictionary_id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load translations for %s: %w", id, err)
	}
	translations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (translationRow, error) {
		var t translationRow
		err := row.Scan(&t.DictionaryID, &t.Locale, &t.Title, &t.Author, &t.Position)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("load translations for %s: %w", id, err)
	}

	return assembleTree(id, dicts, records, values, translations)
}

// LoadByName rebuilds the most recently saved root dictionary carrying the
// given name.
func (r *DictionaryRepository) LoadByName(ctx context.Context, name string) (*entities.Dictionary, error) {
	var id string
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM dictionaries WHERE parent_id IS NULL AND name = $1 ORDER BY created_at DESC LIMIT 1`,
		name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load dictionary %q: %w", name, domain.ErrDictionaryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary %q: %w", name, err)
	}
	return r.Load(ctx, id)
}
