package handlers_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/mike/commander-league-api/internal/domain"
	"github.com/mike/commander-league-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func createDeck(t *testing.T, ts *testutil.TestServer, token, name, list string) uint {
	t.Helper()

	body := map[string]string{"name": name, "list": list}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPost, ts.APIURL("/decks"), body, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created struct {
		Message string `json:"message"`
		DeckID  uint   `json:"deckid"`
	}
	testutil.AssertJSONResponse(t, resp, &created)
	require.NotZero(t, created.DeckID)
	return created.DeckID
}

func TestDeckEndpoints_CreateAndGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	ishai := ts.Lookup.AddNamed("Ishai, Ojutai Dragonspeaker", "W", "U")
	ts.Lookup.AddNamed("Sol Ring")

	deckID := createDeck(t, ts, token, "Azorius Stuff", strings.Join([]string{
		"1 Ishai, Ojutai Dragonspeaker *CMDR*",
		"4 Sol Ring",
	}, "\n"))

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/decks/"+itoa(deckID)), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var detail domain.DeckDetail
	testutil.AssertJSONResponse(t, resp, &detail)

	assert.Equal(t, "Azorius Stuff", detail.Deck.Name)
	require.NotNil(t, detail.Deck.CommanderID)
	assert.Equal(t, ishai.OracleID, *detail.Deck.CommanderID)
	assert.Len(t, detail.Cards, 2)
	require.NotNil(t, detail.Legality)
	assert.False(t, detail.Legality.Legal)
	testutil.AssertLegalityMessage(t, detail.Legality.Messages, "Invalid amount of cards. Expected 60, found 5")
}

func TestDeckEndpoints_RebuildList(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	ts.Lookup.AddNamed("Sol Ring")
	ts.Lookup.AddNamed("Arcane Signet")

	deckID := createDeck(t, ts, token, "Rocks", "1 Sol Ring")

	body := map[string]string{"list": "2 Sol Ring\n1 Arcane Signet"}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPut, ts.APIURL("/decks/"+itoa(deckID)+"/list"), body, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	entries, err := ts.Repos.Decklist.GetByDeckID(req.Context(), deckID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDeckEndpoints_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	ts.Lookup.AddNamed("Sol Ring")
	deckID := createDeck(t, ts, token, "Doomed", "1 Sol Ring")

	t.Run("conflict while used in a match", func(t *testing.T) {
		event := testutil.NewEventBuilder().Build(t, ts.DB.DB)
		match := testutil.BuildMatch(t, ts.DB.DB, event.ID, "Match 1")
		perf := &domain.Performance{MatchID: match.ID, UserID: user.ID, DeckID: &deckID}
		require.NoError(t, ts.DB.DB.Create(perf).Error)

		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/decks/"+itoa(deckID)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusConflict, "Deck cannot be deleted. It is used in matches")

		require.NoError(t, ts.DB.DB.Delete(perf).Error)
	})

	t.Run("deleted once unused", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/decks/"+itoa(deckID)), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("missing deck", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodDelete, ts.APIURL("/decks/99999"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestDeckEndpoints_ListMine(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	ts.Lookup.AddNamed("Sol Ring")
	createDeck(t, ts, token, "Mine A", "1 Sol Ring")
	createDeck(t, ts, token, "Mine B", "1 Sol Ring")
	createDeck(t, ts, otherToken, "Not Mine", "1 Sol Ring")

	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/decks"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var decks []domain.Deck
	testutil.AssertJSONResponse(t, resp, &decks)
	assert.Len(t, decks, 2)
}
