package repository

import (
	"context"
	"database/sql"
)

// DeckRepo handles decks.
type DeckRepo struct {
	db DBTX
}

func NewDeckRepo(db DBTX) *DeckRepo { return &DeckRepo{db: db} }

func (r *DeckRepo) Insert(ctx context.Context, d Deck) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO decks(id, name, created_at) VALUES(?, ?, CURRENT_TIMESTAMP);
	`, d.ID, d.Name)
	return err
}

func (r *DeckRepo) GetByName(ctx context.Context, name string) (*Deck, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM decks WHERE name = ?`, name)
	var d Deck
	if err := row.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeckRepo) List(ctx context.Context) ([]Deck, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM decks ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
