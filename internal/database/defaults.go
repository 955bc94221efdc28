package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"deckview/internal/database/repository"
)

// SeedDefaults ensures a starter deck exists so a fresh install has
// something to browse. It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	deckRepo := repository.NewDeckRepo(db)
	existing, err := deckRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	deckID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("deck:Welcome")).String()
	if err := deckRepo.Insert(ctx, repository.Deck{ID: deckID, Name: "Welcome"}); err != nil {
		return err
	}

	starter := []struct {
		title string
		body  string
	}{
		{"Welcome to deckview", "Browse cards with the **arrow keys**, or drag with the mouse on a narrow terminal.\n\nPress `enter` to expand a card, `/` to jump by title, `i` to import a markdown file, `q` to quit."},
		{"Responsive layout", "Widen the terminal past the breakpoint and the deck flattens into a scrollable strip. Shrink it back and the cards stack up again."},
		{"Swipe to navigate", "On a narrow terminal, press and drag left or right. Crossing the swipe threshold commits one step; letting go early snaps the card back."},
		{"Bring your own cards", "Import any markdown file with `i`: each top-level heading becomes a card, the text below it becomes the body."},
	}
	cardRepo := repository.NewCardRepo(db)
	for i, s := range starter {
		card := repository.Card{
			ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("card:"+s.title)).String(),
			DeckID:   deckID,
			Position: i,
			Title:    s.title,
			Body:     s.body,
		}
		if err := cardRepo.Insert(ctx, card); err != nil {
			return err
		}
	}
	return nil
}
