package postgres_test

import (
	"context"
	"testing"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository/postgres"
	"github.com/mike/commander-league-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecklistRepository_UpsertEntry(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewDecklistRepository(testDB.DB)
	ctx := context.Background()

	card := testutil.NewCardBuilder("Sol Ring").Build(t, testDB.DB)
	deck := testutil.NewDeckBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.UpsertEntry(ctx, &domain.DecklistEntry{
		DeckID: deck.ID,
		CardID: card.ID,
		Count:  1,
	}))

	t.Run("same card updates in place", func(t *testing.T) {
		require.NoError(t, repo.UpsertEntry(ctx, &domain.DecklistEntry{
			DeckID:      deck.ID,
			CardID:      card.ID,
			Count:       4,
			IsSideboard: true,
		}))

		entries, err := repo.GetByDeckID(ctx, deck.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 4, entries[0].Count)
		assert.True(t, entries[0].IsSideboard)
	})

	t.Run("same card in another deck is separate", func(t *testing.T) {
		other := testutil.NewDeckBuilder().WithName("Other").Build(t, testDB.DB)

		require.NoError(t, repo.UpsertEntry(ctx, &domain.DecklistEntry{
			DeckID: other.ID,
			CardID: card.ID,
			Count:  2,
		}))

		entries, err := repo.GetByDeckID(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 2, entries[0].Count)
	})
}

func TestDecklistRepository_DeleteByDeckID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewDecklistRepository(testDB.DB)
	ctx := context.Background()

	card := testutil.NewCardBuilder("Arcane Signet").Build(t, testDB.DB)
	deck := testutil.NewDeckBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.UpsertEntry(ctx, &domain.DecklistEntry{
		DeckID: deck.ID,
		CardID: card.ID,
		Count:  1,
	}))

	require.NoError(t, repo.DeleteByDeckID(ctx, deck.ID))

	entries, err := repo.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
