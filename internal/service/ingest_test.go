package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deckview/internal/database"
	"deckview/internal/database/repository"
)

func newTestDB(t *testing.T) (*sql.DB, *repository.DeckRepo, *repository.CardRepo) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db, repository.NewDeckRepo(db), repository.NewCardRepo(db)
}

func TestImportMarkdownSplitsOnHeadings(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, decks, cards := newTestDB(t)
	svc := &IngestService{DB: db}

	data := strings.Join([]string{
		"stray preamble line",
		"# Opening theory",
		"Control the center.",
		"",
		"Develop pieces before attacking.",
		"# Endgame",
		"Activate the king.",
	}, "\n")

	res, err := svc.ImportMarkdown(ctx, strings.NewReader(data), "chess")
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 1, res.Skipped)

	deck, err := decks.GetByName(ctx, "chess")
	require.NoError(t, err)
	require.NotNil(t, deck)

	got, err := cards.ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Opening theory", got[0].Title)
	require.Equal(t, "Control the center.\n\nDevelop pieces before attacking.", got[0].Body)
	require.Equal(t, 0, got[0].Position)
	require.Equal(t, "Endgame", got[1].Title)
	require.Equal(t, 1, got[1].Position)
}

func TestImportMarkdownAppendsToExistingDeck(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, decks, cards := newTestDB(t)
	svc := &IngestService{DB: db}

	_, err := svc.ImportMarkdown(ctx, strings.NewReader("# One\nfirst"), "notes")
	require.NoError(t, err)
	res, err := svc.ImportMarkdown(ctx, strings.NewReader("# Two\nsecond\n# Three\nthird"), "notes")
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)

	deck, err := decks.GetByName(ctx, "notes")
	require.NoError(t, err)
	got, err := cards.ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, c := range got {
		require.Equal(t, i, c.Position)
	}
	require.Equal(t, []string{"One", "Two", "Three"}, []string{got[0].Title, got[1].Title, got[2].Title})
}

func TestImportMarkdownEmptyInput(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, decks, _ := newTestDB(t)
	svc := &IngestService{DB: db}

	res, err := svc.ImportMarkdown(ctx, strings.NewReader(""), "empty")
	require.NoError(t, err)
	require.Equal(t, 0, res.Imported)

	// The deck itself exists so a later import lands somewhere predictable.
	deck, err := decks.GetByName(ctx, "empty")
	require.NoError(t, err)
	require.NotNil(t, deck)
}

func TestImportMarkdownLeavesNothingOnError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // every statement inside the transaction fails
	db, decks, _ := newTestDB(t)
	svc := &IngestService{DB: db}

	res, err := svc.ImportMarkdown(ctx, strings.NewReader("# One\nbody"), "doomed")
	require.Error(t, err)
	require.Equal(t, 0, res.Imported)

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer checkCancel()
	deck, err := decks.GetByName(checkCtx, "doomed")
	require.NoError(t, err)
	require.Nil(t, deck)
}

func TestOpenDeckByNameAndDefault(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, decks, cards := newTestDB(t)
	ingest := &IngestService{DB: db}
	library := &LibraryService{Decks: decks, Cards: cards}

	_, err := ingest.ImportMarkdown(ctx, strings.NewReader("# A card\nbody"), "first")
	require.NoError(t, err)

	deck, got, err := library.OpenDeck(ctx, "first")
	require.NoError(t, err)
	require.NotNil(t, deck)
	require.Len(t, got, 1)

	deck, got, err = library.OpenDeck(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, deck)
	require.Equal(t, "first", deck.Name)
	require.Len(t, got, 1)

	deck, got, err = library.OpenDeck(ctx, "no-such-deck")
	require.NoError(t, err)
	require.Nil(t, deck)
	require.Empty(t, got)
}
