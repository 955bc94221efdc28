package service

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"deckview/internal/database"
	"deckview/internal/database/repository"
)

// IngestResult summarizes one import run.
type IngestResult struct {
	Imported int
	Skipped  int
}

// IngestService turns markdown documents into cards.
type IngestService struct {
	DB *sql.DB
}

// ImportMarkdown appends one card per top-level heading in r to the named
// deck, creating the deck if needed. Text above the first heading is
// skipped. New cards land after the deck's existing cards so the fixed
// order of a running carousel is never reshuffled. The whole import runs
// in one transaction: either every card lands or none do.
func (s *IngestService) ImportMarkdown(ctx context.Context, r io.Reader, deckName string) (IngestResult, error) {
	var res IngestResult

	sections, skipped := splitSections(r)
	res.Skipped = skipped

	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		decks := repository.NewDeckRepo(tx)
		cards := repository.NewCardRepo(tx)

		deck, err := decks.GetByName(ctx, deckName)
		if err != nil {
			return fmt.Errorf("resolve deck: %w", err)
		}
		if deck == nil {
			deck = &repository.Deck{ID: uuid.NewString(), Name: deckName}
			if err := decks.Insert(ctx, *deck); err != nil {
				return fmt.Errorf("create deck %q: %w", deckName, err)
			}
		}

		pos, err := cards.NextPosition(ctx, deck.ID)
		if err != nil {
			return fmt.Errorf("next position: %w", err)
		}
		for _, sec := range sections {
			card := repository.Card{
				ID:       uuid.NewString(),
				DeckID:   deck.ID,
				Position: pos,
				Title:    sec.title,
				Body:     sec.body,
			}
			if err := cards.Insert(ctx, card); err != nil {
				return fmt.Errorf("insert %q: %w", sec.title, err)
			}
			pos++
			res.Imported++
		}
		return nil
	})
	if err != nil {
		return IngestResult{Skipped: skipped}, err
	}
	return res, nil
}

type section struct {
	title string
	body  string
}

// splitSections cuts a markdown stream on "# " headings. Returns the
// sections plus the count of non-blank preamble lines that had no heading
// to belong to.
func splitSections(r io.Reader) ([]section, int) {
	var (
		sections []section
		current  *section
		body     strings.Builder
		skipped  int
	)
	flush := func() {
		if current == nil {
			return
		}
		current.body = strings.TrimSpace(body.String())
		sections = append(sections, *current)
		current = nil
		body.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if title, ok := strings.CutPrefix(line, "# "); ok {
			flush()
			title = strings.TrimSpace(title)
			if title == "" {
				skipped++
				continue
			}
			current = &section{title: title}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) != "" {
				skipped++
			}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()
	return sections, skipped
}
