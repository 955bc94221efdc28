package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"deckview/internal/database/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)

	err := WithTx(db, func(tx *sql.Tx) error {
		return repository.NewDeckRepo(tx).Insert(ctx, repository.Deck{ID: "d-kept", Name: "kept"})
	})
	require.NoError(t, err)

	got, err := repository.NewDeckRepo(db).GetByName(ctx, "kept")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)

	boom := errors.New("boom")
	err := WithTx(db, func(tx *sql.Tx) error {
		decks := repository.NewDeckRepo(tx)
		if err := decks.Insert(ctx, repository.Deck{ID: "d-gone", Name: "discarded"}); err != nil {
			return err
		}
		if err := repository.NewCardRepo(tx).Insert(ctx, repository.Card{
			ID: "c-gone", DeckID: "d-gone", Position: 0, Title: "discarded card",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repository.NewDeckRepo(db).GetByName(ctx, "discarded")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := newTestDB(t)

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	decks, err := repository.NewDeckRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	require.Equal(t, "Welcome", decks[0].Name)

	cards, err := repository.NewCardRepo(db).ListByDeck(ctx, decks[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, cards)
}
