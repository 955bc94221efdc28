package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx, so a repo can
// run standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Deck represents a deck row.
type Deck struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Card represents a card row. Position is the card's slot in its deck's
// fixed order, starting at 0.
type Card struct {
	ID        string
	DeckID    string
	Position  int
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
