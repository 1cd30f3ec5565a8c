package services

import (
	"context"
	"testing"

	"backoffice/internal/domain"
	"backoffice/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activityFixture(t *testing.T) (*memStore, models.Day) {
	t.Helper()
	store := newMemStore()
	store.itineraries[1] = models.Itinerary{ID: 1}
	day := store.seedDay(models.Day{ItineraryID: 1, DayNumber: 1})
	return store, day
}

func titles(acts []models.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Title)
	}
	return out
}

func TestAddActivityAppendsAndNeverReusesGaps(t *testing.T) {
	store, day := activityFixture(t)
	svc := ActivityService{Activities: store, Itineraries: store}
	ctx := context.Background()

	a, err := svc.AddActivity(ctx, day.ID, models.Activity{Title: "Breakfast"})
	require.NoError(t, err)
	assert.Equal(t, 0, a.SortOrder)
	b, err := svc.AddActivity(ctx, day.ID, models.Activity{Title: "Beach"})
	require.NoError(t, err)
	assert.Equal(t, 1, b.SortOrder)
	c, err := svc.AddActivity(ctx, day.ID, models.Activity{Title: "Dinner"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.SortOrder)

	require.NoError(t, svc.DeleteActivity(ctx, b.ID))
	d, err := svc.AddActivity(ctx, day.ID, models.Activity{Title: "Night market"})
	require.NoError(t, err)
	assert.Equal(t, 3, d.SortOrder)

	list, err := svc.ListActivities(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast", "Dinner", "Night market"}, titles(list))
}

func TestAddActivityRequiresTitle(t *testing.T) {
	store, day := activityFixture(t)
	_, err := ActivityService{Activities: store, Itineraries: store}.AddActivity(context.Background(), day.ID, models.Activity{Title: "  "})
	assert.True(t, domain.IsValidation(err))
}

func TestListActivitiesOrdersByDayThenSortOrder(t *testing.T) {
	store, day1 := activityFixture(t)
	day2 := store.seedDay(models.Day{ItineraryID: 1, DayNumber: 2})
	store.seedActivity(models.Activity{DayID: day2.ID, Title: "d2-a", SortOrder: 0})
	store.seedActivity(models.Activity{DayID: day1.ID, Title: "d1-b", SortOrder: 5})
	store.seedActivity(models.Activity{DayID: day1.ID, Title: "d1-a", SortOrder: 1})

	list, err := ActivityService{Activities: store}.ListActivities(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1-a", "d1-b", "d2-a"}, titles(list))
}

func TestUpdateActivityKeepsSortOrder(t *testing.T) {
	store, day := activityFixture(t)
	a := store.seedActivity(models.Activity{DayID: day.ID, Title: "Old", SortOrder: 4})

	out, err := ActivityService{Activities: store}.UpdateActivity(context.Background(), a.ID, models.Activity{Title: "New", SortOrder: 0, IsTransfer: true})
	require.NoError(t, err)
	assert.Equal(t, "New", out.Title)
	assert.Equal(t, 4, out.SortOrder)
	assert.True(t, out.IsTransfer)
}

func TestMoveActivitySwapsWithNeighbour(t *testing.T) {
	store, day := activityFixture(t)
	store.seedActivity(models.Activity{DayID: day.ID, Title: "first", SortOrder: 0})
	second := store.seedActivity(models.Activity{DayID: day.ID, Title: "second", SortOrder: 3})
	store.seedActivity(models.Activity{DayID: day.ID, Title: "third", SortOrder: 7})
	svc := ActivityService{Activities: store}

	list, err := svc.MoveActivity(context.Background(), second.ID, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first", "third"}, titles(list))

	list, err = svc.MoveActivity(context.Background(), second.ID, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first", "third"}, titles(list), "moving past the top is a no-op")

	stored, _ := store.FetchDayActivities(context.Background(), day.ID)
	seen := map[int]bool{}
	for _, a := range stored {
		assert.False(t, seen[a.SortOrder], "duplicate sort order %d", a.SortOrder)
		seen[a.SortOrder] = true
	}
}

func TestMoveActivityRejectsUnknownDirection(t *testing.T) {
	store, _ := activityFixture(t)
	_, err := ActivityService{Activities: store}.MoveActivity(context.Background(), 1, MoveDirection("sideways"))
	assert.True(t, domain.IsValidation(err))
}
