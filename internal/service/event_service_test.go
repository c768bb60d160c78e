package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mike/commander-league-api/internal/repository/postgres"
	"github.com/mike/commander-league-api/internal/service"
	"github.com/mike/commander-league-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	eventService := service.NewEventService(repos)
	ctx := context.Background()

	t.Run("weekly events are numbered", func(t *testing.T) {
		testDB.Truncate(t)

		event, err := eventService.Create(ctx, service.CreateEventInput{Weekly: true})

		require.NoError(t, err)
		assert.Equal(t, "Weekly 1", event.Name)
		assert.True(t, event.Weekly)
	})

	t.Run("one event per day", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := eventService.Create(ctx, service.CreateEventInput{Weekly: true})
		require.NoError(t, err)

		_, err = eventService.Create(ctx, service.CreateEventInput{Weekly: true})
		assert.ErrorIs(t, err, service.ErrEventExistsToday)
	})

	t.Run("weekly numbering counts past events", func(t *testing.T) {
		testDB.Truncate(t)

		testutil.NewEventBuilder().
			WithName("Weekly 1").
			WithTime(time.Now().Add(-48 * time.Hour)).
			Build(t, testDB.DB)

		event, err := eventService.Create(ctx, service.CreateEventInput{Weekly: true})

		require.NoError(t, err)
		assert.Equal(t, "Weekly 2", event.Name)
	})

	t.Run("themed event keeps its given name", func(t *testing.T) {
		testDB.Truncate(t)

		event, err := eventService.Create(ctx, service.CreateEventInput{
			Name:   "Pauper Night",
			Themed: true,
			Weekly: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "Pauper Night", event.Name)
		assert.True(t, event.Themed)
	})

	t.Run("untitled non-weekly gets a fallback name", func(t *testing.T) {
		testDB.Truncate(t)

		event, err := eventService.Create(ctx, service.CreateEventInput{})

		require.NoError(t, err)
		assert.Equal(t, "New Event", event.Name)
	})
}

func TestEventService_GetDetail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	eventService := service.NewEventService(repos)
	matchService := service.NewMatchService(repos.Match, repos.Performance, nil)
	perfService := service.NewPerformanceService(repos.Performance, repos.Match, repos.User, nil)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().WithUsername("podplayer").Build(t, testDB.DB)
	event := testutil.NewEventBuilder().Build(t, testDB.DB)

	match, err := matchService.Create(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Match 1", match.Name)

	_, err = perfService.Create(ctx, match.ID, user.PublicID)
	require.NoError(t, err)

	detail, err := eventService.GetDetail(ctx, event.ID)
	require.NoError(t, err)

	assert.Equal(t, event.ID, detail.Event.ID)
	require.Len(t, detail.Matches, 1)
	require.Len(t, detail.Matches[0].Performances, 1)
	assert.Equal(t, "podplayer", detail.Matches[0].Performances[0].Username)
}
