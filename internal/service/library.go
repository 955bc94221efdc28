package service

import (
	"context"
	"fmt"

	"deckview/internal/database/repository"
)

// LibraryService resolves decks and their cards for presentation.
type LibraryService struct {
	Decks *repository.DeckRepo
	Cards *repository.CardRepo
}

// OpenDeck returns the named deck and its cards in position order. An
// empty name opens the first deck. A missing deck is not an error; the
// caller gets a nil deck and an empty sequence, which the carousel treats
// as a valid empty state.
func (s *LibraryService) OpenDeck(ctx context.Context, name string) (*repository.Deck, []repository.Card, error) {
	var d *repository.Deck
	if name != "" {
		found, err := s.Decks.GetByName(ctx, name)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve deck %q: %w", name, err)
		}
		d = found
	} else {
		all, err := s.Decks.List(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("list decks: %w", err)
		}
		if len(all) > 0 {
			d = &all[0]
		}
	}
	if d == nil {
		return nil, nil, nil
	}
	cards, err := s.Cards.ListByDeck(ctx, d.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cards for %q: %w", d.Name, err)
	}
	return d, cards, nil
}
