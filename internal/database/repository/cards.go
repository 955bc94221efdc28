package repository

import "context"

// CardRepo handles cards.
type CardRepo struct {
	db DBTX
}

func NewCardRepo(db DBTX) *CardRepo { return &CardRepo{db: db} }

func (r *CardRepo) Insert(ctx context.Context, c Card) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO cards(id, deck_id, position, title, body, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, c.ID, c.DeckID, c.Position, c.Title, c.Body)
	return err
}

// ListByDeck returns the deck's cards in presentation order.
func (r *CardRepo) ListByDeck(ctx context.Context, deckID string) ([]Card, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, deck_id, position, title, body, created_at, updated_at
	FROM cards WHERE deck_id = ? ORDER BY position`, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Card
	for rows.Next() {
		var c Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Position, &c.Title, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// NextPosition returns the first free position in a deck.
func (r *CardRepo) NextPosition(ctx context.Context, deckID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, `
	SELECT COALESCE(MAX(position) + 1, 0) FROM cards WHERE deck_id = ?`, deckID).Scan(&next)
	return next, err
}
