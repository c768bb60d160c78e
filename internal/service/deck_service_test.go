package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/repository"
	"github.com/mike/commander-league-api/internal/repository/postgres"
	"github.com/mike/commander-league-api/internal/scryfall"
	"github.com/mike/commander-league-api/internal/service"
	"github.com/mike/commander-league-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deckServiceFixture struct {
	decks  *service.DeckService
	colors *service.ColorService
	lookup *testutil.FakeLookup
	repos  *repository.Repositories
	testDB *testutil.TestDB
	user   *domain.User
}

func newDeckServiceFixture(t *testing.T) *deckServiceFixture {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	lookup := testutil.NewFakeLookup()
	colors := service.NewColorService(repos.ColorIdentity)
	cards := service.NewCardService(repos.Card, repos.Printing, colors, lookup)
	decks := service.NewDeckService(repos, cards, colors, cfg)

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	return &deckServiceFixture{
		decks:  decks,
		colors: colors,
		lookup: lookup,
		repos:  repos,
		testDB: testDB,
		user:   user,
	}
}

func (f *deckServiceFixture) identityName(t *testing.T, id uint) string {
	t.Helper()
	identity, err := f.colors.GetByID(context.Background(), id)
	require.NoError(t, err)
	return identity.Name
}

func TestDeckService_BuildDeck_CommanderThenPartner(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	codie := f.lookup.AddNamed("Codie, Vociferous Codex", "W", "U", "B", "R", "G")
	kraum := f.lookup.AddNamed("Kraum, Ludevic's Opus", "U", "R")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		Name:   "Partners",
		List: strings.Join([]string{
			"Commander",
			"1 Codie, Vociferous Codex",
			"1 Kraum, Ludevic's Opus",
		}, "\n"),
	})
	require.NoError(t, err)

	require.NotNil(t, deck.CommanderID)
	require.NotNil(t, deck.PartnerID)
	assert.Equal(t, codie.OracleID, *deck.CommanderID)
	assert.Equal(t, kraum.OracleID, *deck.PartnerID)
	assert.Equal(t, "Five-Color", f.identityName(t, deck.IdentityID))

	entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.True(t, entry.IsCommander)
	}
}

func TestDeckService_BuildDeck_PartnerIdentityUnion(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	f.lookup.AddNamed("Ishai, Ojutai Dragonspeaker", "W", "U")
	f.lookup.AddNamed("Kraum, Ludevic's Opus", "U", "R")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List: strings.Join([]string{
			"1 Ishai, Ojutai Dragonspeaker *CMDR*",
			"1 Kraum, Ludevic's Opus *CMDR*",
		}, "\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jeskai", f.identityName(t, deck.IdentityID))
}

func TestDeckService_BuildDeck_Defaults(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List:   "",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Deck", deck.Name)
	assert.Nil(t, deck.CommanderID)
	assert.Equal(t, domain.ColorlessIdentityID, deck.IdentityID)
	assert.False(t, deck.IsLegal)
}

func TestDeckService_BuildDeck_SkipsUnresolvedLines(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	f.lookup.AddNamed("Sol Ring")
	f.lookup.AddNamed("Arcane Signet")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List: strings.Join([]string{
			"1 Sol Ring",
			"1 Definitely Not A Real Card",
			"1 Arcane Signet",
		}, "\n"),
	})
	require.NoError(t, err)

	entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDeckService_BuildDeck_CompanionRegion(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	cfg := testutil.TestConfig()
	yorion := scryfall.Card{
		ID:            "yorion-printing-id",
		OracleID:      cfg.SpecialCompanionID,
		Name:          "Yorion, Sky Nomad",
		TypeLine:      "Legendary Creature",
		ManaCost:      "{3}{W/U}{W/U}",
		CMC:           5,
		ColorIdentity: []string{"W", "U"},
		SetType:       "expansion",
		ReleasedAt:    "2020-04-24",
	}
	f.lookup.Add(yorion)

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List: strings.Join([]string{
			"Companion",
			"1 Yorion, Sky Nomad",
		}, "\n"),
	})
	require.NoError(t, err)

	require.NotNil(t, deck.CompanionID)
	assert.Equal(t, cfg.SpecialCompanionID, *deck.CompanionID)

	entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsCompanion)
	assert.True(t, entries[0].IsSideboard)
	assert.False(t, entries[0].IsCommander)
}

func TestDeckService_BuildDeck_ThirdCommanderStaysPlainEntry(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	first := f.lookup.AddNamed("Ishai, Ojutai Dragonspeaker", "W", "U")
	second := f.lookup.AddNamed("Kraum, Ludevic's Opus", "U", "R")
	f.lookup.AddNamed("Jeska, Thrice Reborn", "R")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List: strings.Join([]string{
			"Commander",
			"1 Ishai, Ojutai Dragonspeaker",
			"1 Kraum, Ludevic's Opus",
			"1 Jeska, Thrice Reborn",
		}, "\n"),
	})
	require.NoError(t, err)

	require.NotNil(t, deck.CommanderID)
	require.NotNil(t, deck.PartnerID)
	assert.Equal(t, first.OracleID, *deck.CommanderID)
	assert.Equal(t, second.OracleID, *deck.PartnerID)
	assert.Equal(t, "Jeskai", f.identityName(t, deck.IdentityID))

	entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	commanders := 0
	for _, entry := range entries {
		if entry.IsCommander {
			commanders++
		}
	}
	assert.Equal(t, 2, commanders)
}

// legalList builds a 60-card list with a marked commander, registering every
// card with the fake lookup.
func legalList(f *deckServiceFixture) string {
	var b strings.Builder

	f.lookup.AddNamed("Anafenza, Kin-Tree Spirit", "W")
	b.WriteString("1 Anafenza, Kin-Tree Spirit *CMDR*\n")

	for i := 1; i <= 14; i++ {
		name := fmt.Sprintf("Bulk Filler %d", i)
		f.lookup.AddNamed(name, "W")
		fmt.Fprintf(&b, "4 %s\n", name)
	}

	f.lookup.AddNamed("Plains", "W")
	b.WriteString("3 Plains\n")

	return b.String()
}

func TestDeckService_BuildDeck_LegalityPersisted(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		Name:   "Mono White",
		List:   legalList(f),
	})
	require.NoError(t, err)

	assert.True(t, deck.IsLegal)

	detail, err := f.decks.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.True(t, detail.Legality.Legal)
	assert.Empty(t, detail.Legality.Messages)
}

func TestDeckService_BuildDeck_ShortDeckMessages(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	f.lookup.AddNamed("Sol Ring")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List:   "4 Sol Ring",
	})
	require.NoError(t, err)

	assert.False(t, deck.IsLegal)

	detail, err := f.decks.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	testutil.AssertLegalityMessage(t, detail.Legality.Messages, "Missing commander")
	testutil.AssertLegalityMessage(t, detail.Legality.Messages, "Invalid amount of cards. Expected 60, found 4")
}

func TestDeckService_RebuildList_Idempotent(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	list := legalList(f)

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List:   list,
	})
	require.NoError(t, err)

	before, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)

	rebuilt, err := f.decks.RebuildList(ctx, deck.ID, list)
	require.NoError(t, err)
	assert.True(t, rebuilt.IsLegal)

	after, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	var cardCount int64
	err = f.testDB.DB.Table("cards").Count(&cardCount).Error
	require.NoError(t, err)
	assert.EqualValues(t, len(before), cardCount)
}

func TestDeckService_RebuildList_SameListKeepsSlots(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	anafenza := f.lookup.AddNamed("Anafenza, Kin-Tree Spirit", "W")
	f.lookup.AddNamed("Plains")

	list := strings.Join([]string{
		"1 Anafenza, Kin-Tree Spirit *CMDR*",
		"59 Plains",
	}, "\n")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List:   list,
	})
	require.NoError(t, err)
	require.NotNil(t, deck.CommanderID)

	rebuilt, err := f.decks.RebuildList(ctx, deck.ID, list)
	require.NoError(t, err)

	require.NotNil(t, rebuilt.CommanderID)
	assert.Equal(t, anafenza.OracleID, *rebuilt.CommanderID)
	assert.Nil(t, rebuilt.PartnerID)
	assert.Equal(t, "White", f.identityName(t, rebuilt.IdentityID))
}

func TestDeckService_RebuildList_SwapsCommander(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	anafenza := f.lookup.AddNamed("Anafenza, Kin-Tree Spirit", "W")
	kraum := f.lookup.AddNamed("Kraum, Ludevic's Opus", "U", "R")
	f.lookup.AddNamed("Plains")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List: strings.Join([]string{
			"1 Anafenza, Kin-Tree Spirit *CMDR*",
			"2 Plains",
		}, "\n"),
	})
	require.NoError(t, err)

	rebuilt, err := f.decks.RebuildList(ctx, deck.ID, strings.Join([]string{
		"1 Kraum, Ludevic's Opus *CMDR*",
		"2 Plains",
	}, "\n"))
	require.NoError(t, err)

	require.NotNil(t, rebuilt.CommanderID)
	assert.Equal(t, kraum.OracleID, *rebuilt.CommanderID)
	assert.Nil(t, rebuilt.PartnerID)
	assert.Equal(t, "Izzet", f.identityName(t, rebuilt.IdentityID))

	// The dropped commander's row is gone and only the new commander's
	// entry carries the flag.
	entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.NotEqual(t, anafenza.OracleID, entry.CardID)
		assert.Equal(t, entry.CardID == kraum.OracleID, entry.IsCommander)
	}
}

func TestDeckService_RebuildList_DropsRemovedEntries(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	f.lookup.AddNamed("Sol Ring")
	f.lookup.AddNamed("Plains")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List:   "1 Sol Ring\n3 Plains",
	})
	require.NoError(t, err)

	_, err = f.decks.RebuildList(ctx, deck.ID, "3 Plains")
	require.NoError(t, err)

	entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Count)
}

func TestDeckService_ApplyPatch(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	ishai := f.lookup.AddNamed("Ishai, Ojutai Dragonspeaker", "W", "U")
	f.lookup.AddNamed("Sol Ring")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List: strings.Join([]string{
			"1 Ishai, Ojutai Dragonspeaker",
			"1 Sol Ring",
		}, "\n"),
	})
	require.NoError(t, err)
	require.Nil(t, deck.CommanderID)

	t.Run("rename and set power", func(t *testing.T) {
		name := "Renamed"
		power := 7
		patched, err := f.decks.ApplyPatch(ctx, deck.ID, domain.DeckPatch{Name: &name, Power: &power})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", patched.Name)
		assert.Equal(t, 7, patched.Power)
	})

	t.Run("promote entry to commander", func(t *testing.T) {
		commanderID := ishai.OracleID
		patched, err := f.decks.ApplyPatch(ctx, deck.ID, domain.DeckPatch{CommanderID: &commanderID})

		require.NoError(t, err)
		require.NotNil(t, patched.CommanderID)
		assert.Equal(t, ishai.OracleID, *patched.CommanderID)
		assert.Equal(t, "Azorius", f.identityName(t, patched.IdentityID))

		entry, err := f.repos.Decklist.GetEntry(ctx, deck.ID, ishai.OracleID)
		require.NoError(t, err)
		assert.True(t, entry.IsCommander)
	})

	t.Run("clear commander resets identity", func(t *testing.T) {
		empty := ""
		patched, err := f.decks.ApplyPatch(ctx, deck.ID, domain.DeckPatch{CommanderID: &empty})

		require.NoError(t, err)
		assert.Nil(t, patched.CommanderID)
		assert.Equal(t, domain.ColorlessIdentityID, patched.IdentityID)

		entry, err := f.repos.Decklist.GetEntry(ctx, deck.ID, ishai.OracleID)
		require.NoError(t, err)
		assert.False(t, entry.IsCommander)
	})

	t.Run("commander must be in the list", func(t *testing.T) {
		missing := "not-in-this-deck"
		_, err := f.decks.ApplyPatch(ctx, deck.ID, domain.DeckPatch{CommanderID: &missing})

		assert.ErrorIs(t, err, domain.ErrCardNotFound)
	})

	t.Run("move card to sideboard and back", func(t *testing.T) {
		solRing, err := f.repos.Card.GetByName(ctx, "Sol Ring")
		require.NoError(t, err)

		_, err = f.decks.ApplyPatch(ctx, deck.ID, domain.DeckPatch{SideboardAdd: &solRing.ID})
		require.NoError(t, err)

		entry, err := f.repos.Decklist.GetEntry(ctx, deck.ID, solRing.ID)
		require.NoError(t, err)
		assert.True(t, entry.IsSideboard)

		_, err = f.decks.ApplyPatch(ctx, deck.ID, domain.DeckPatch{SideboardRemove: &solRing.ID})
		require.NoError(t, err)

		entry, err = f.repos.Decklist.GetEntry(ctx, deck.ID, solRing.ID)
		require.NoError(t, err)
		assert.False(t, entry.IsSideboard)
	})
}

func TestDeckService_DeleteDeck(t *testing.T) {
	f := newDeckServiceFixture(t)
	ctx := context.Background()

	f.lookup.AddNamed("Sol Ring")

	deck, err := f.decks.BuildDeck(ctx, service.BuildDeckInput{
		UserID: f.user.ID,
		List:   "1 Sol Ring",
	})
	require.NoError(t, err)

	t.Run("refused while matches reference it", func(t *testing.T) {
		event := testutil.NewEventBuilder().Build(t, f.testDB.DB)
		match := testutil.BuildMatch(t, f.testDB.DB, event.ID, "Match 1")
		perf := &domain.Performance{MatchID: match.ID, UserID: f.user.ID, DeckID: &deck.ID}
		require.NoError(t, f.repos.Performance.Create(ctx, perf))

		err := f.decks.DeleteDeck(ctx, deck.ID)
		assert.ErrorIs(t, err, domain.ErrDeckInUse)

		require.NoError(t, f.repos.Performance.Delete(ctx, perf.ID))
	})

	t.Run("deleted with its entries once unused", func(t *testing.T) {
		require.NoError(t, f.decks.DeleteDeck(ctx, deck.ID))

		_, err := f.decks.GetDeck(ctx, deck.ID)
		assert.ErrorIs(t, err, domain.ErrDeckNotFound)

		entries, err := f.repos.Decklist.GetByDeckID(ctx, deck.ID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
